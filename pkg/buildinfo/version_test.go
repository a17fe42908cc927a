package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	got := Template()
	for _, want := range []string{"{{.Name}} version v1.2.3", "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
	if !strings.HasPrefix(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
}
