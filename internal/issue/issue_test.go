// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	NoControllersInstalledId,
	ControllerNotFoundId,
	ConfigLoadFailedId,
	SyslogUnavailableId,
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if NoControllersInstalledId != 1 {
		t.Errorf("NoControllersInstalledId = %d, want 1", NoControllersInstalledId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(NoControllersInstalledId)
	if issue == nil {
		t.Fatal("Get(NoControllersInstalledId) returned nil")
	}

	if issue.Id() != NoControllersInstalledId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), NoControllersInstalledId)
	}
	if !strings.Contains(string(issue.MarkdownMsg()), "No controllers installed") {
		t.Error("MarkdownMsg() should contain 'No controllers installed'")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var got string
	render = func(in string, stylePath string) (string, error) {
		got = in
		return in, nil
	}

	issue := &Issue{
		mdMsg: "# Title",
		links: []HttpLink{"https://example.com/docs", "https://example.com/ext"},
	}
	if _, err := issue.Render("notty"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{"# Title", "## See also", "https://example.com/docs", "https://example.com/ext"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered markdown missing %q:\n%s", want, got)
		}
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := (&Issue{mdMsg: "# Title"}).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Errorf("Render() without links should not add a See also section: %q", rendered)
	}
}

func TestIssue_CatalogLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(SyslogUnavailableId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "https://man7.org/linux/man-pages/man3/syslog.3.html") {
		t.Errorf("syslog issue should link the syslog(3) page:\n%s", rendered)
	}

	rendered, err = Get(ControllerNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Errorf("controller-not-found issue has no links:\n%s", rendered)
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
		rendered, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if strings.TrimSpace(rendered) == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}

func TestIssuesMapCompleteness(t *testing.T) {
	for _, id := range allIds {
		if Get(id) == nil {
			t.Errorf("Issue with ID %d is not in the issues map", id)
		}
	}
	if got := len(Values()); got != len(allIds) {
		t.Errorf("len(Values()) = %d, want %d", got, len(allIds))
	}
}
