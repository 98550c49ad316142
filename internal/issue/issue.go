// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	NoControllersInstalledId Id = iota + 1
	ControllerNotFoundId
	ConfigLoadFailedId
	SyslogUnavailableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id    Id          // ID used to lookup the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
	links []HttpLink  // Listed under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue as terminal markdown using the glamour style at stylePath
// ("dark", "light", "notty", ... or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.links) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	noControllersInstalledIssue = &Issue{
		id: NoControllersInstalledId,
		mdMsg: `
# No controllers installed!

sprockets found no controller plugins, so there is nothing to run.

## Where controllers come from
1. Controllers compiled into this binary
2. Manifests in the index directories (` + "`*.cue`" + ` or ` + "`*.toml`" + `)

## Things you can try:
- List the configured index directories:
~~~
$ echo $SPROCKETS_INDEX_PATHS
~~~
- Install a package that ships a controller manifest
- Rebuild sprockets with the controller plugin imported`,
	}

	controllerNotFoundIssue = &Issue{
		id: ControllerNotFoundId,
		mdMsg: `
# Unknown controller!

The first argument must be the name of an installed controller.

## Things you can try:
- Run ` + "`sprockets --help`" + ` to see the installed controllers
- Check that the manifest advertising the controller is in an index directory`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

sprockets could not read its config file and is using the defaults.

## Things you can try:
- Check the CUE syntax of ` + "`config.cue`" + `
- Point ` + "`SPROCKETS_CONFIG`" + ` at a different file`,
		links: []HttpLink{"https://cuelang.org/docs/"},
	}

	syslogUnavailableIssue = &Issue{
		id: SyslogUnavailableId,
		mdMsg: `
# Syslog unavailable!

The ` + "`--syslog`" + ` flag was given but no syslog daemon could be reached.
Logging continues on the console only.

## Things you can try:
- Check that a syslog daemon listens on ` + "`udp localhost:514`" + `
- Set ` + "`syslog.network`" + ` and ` + "`syslog.address`" + ` in the config file`,
		links: []HttpLink{
			"https://man7.org/linux/man-pages/man3/syslog.3.html",
			"https://pkg.go.dev/log/syslog#Dial",
		},
	}

	issues = map[Id]*Issue{
		noControllersInstalledIssue.Id(): noControllersInstalledIssue,
		controllerNotFoundIssue.Id():     controllerNotFoundIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		syslogUnavailableIssue.Id():      syslogUnavailableIssue,
	}
)

func Values() []*Issue {
	return slices.Collect(maps.Values(issues))
}

func Get(id Id) *Issue {
	return issues[id]
}
