// SPDX-License-Identifier: MPL-2.0

// Package controller defines the contract between the sprockets CLI and the
// controller plugins it launches.
//
// A controller is anything implementing [Controller]. It may additionally
// implement [FlagContributor] to add flags to its subcommand and [Describer]
// to provide the help line shown in the command listing.
//
// Controllers are compiled into the binary. A plugin package registers a
// factory under its module identifier from init(), and usually also
// advertises itself under a controller name:
//
//	func init() {
//		controller.Register("example.com/sprockets/web", func() controller.Controller {
//			return &Web{}
//		})
//		controller.RegisterEntryPoint(controller.ControllerGroup, "web", "example.com/sprockets/web")
//	}
//
// The binary then blank-imports the plugin package. Entry points can also be
// declared in manifest files on the plugin index path; those refer to modules
// by the same identifiers.
package controller
