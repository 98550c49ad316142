// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of markdown
// explanations for the conditions users most often run into.
package issue
