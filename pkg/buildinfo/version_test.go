package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder", tmpl)
	}
	if !strings.Contains(tmpl, Commit) {
		t.Errorf("Template() = %q, should contain commit %q", tmpl, Commit)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "ghstats/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
