// SPDX-License-Identifier: MPL-2.0

// Package registry discovers controllers and applications from a plugin index.
//
// An Index yields entry points, (group, name, module) triples, for a group.
// Controllers live in the "sprockets.controller" group; the applications of
// controller c live in "sprockets.c.app". The Registry loads controller modules
// through a Loader and resolves application aliases to module identifiers.
//
// Three index sources are provided and can be combined with MultiIndex:
//
//   - BuiltinIndex: entry points compiled into the binary via controller.RegisterEntryPoint
//   - FileIndex: CUE or TOML manifests in index directories
//   - StaticIndex: a fixed list, mostly for tests and embedding
package registry
