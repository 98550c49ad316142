// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"
)

const listColumnWidth = 25

// list prints the applications registered for controllerName. Nothing is run.
func (d *dispatcher) list(ctx context.Context, controllerName string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nInstalled Sprockets %s Apps\n\n", strings.ToUpper(controllerName))
	fmt.Fprintf(&b, "%-*s %*s\n", listColumnWidth, "Name", listColumnWidth, "Module")
	b.WriteString(strings.Repeat("-", 2*listColumnWidth+1) + "\n")
	for app := range d.registry.ListApplications(ctx, controllerName) {
		fmt.Fprintf(&b, "%-*s %*s\n", listColumnWidth, app.Name, listColumnWidth, "("+app.Module+")")
	}
	b.WriteString("\n")

	_, err := fmt.Fprint(d.stdout, b.String())
	return err
}
