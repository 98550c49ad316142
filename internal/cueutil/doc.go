// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against embedded schemas.
//
// Both the sprockets config file and the CUE plugin-index manifests use the
// same flow: compile the schema, compile the document, unify it with a schema
// definition, validate, then decode.
package cueutil
