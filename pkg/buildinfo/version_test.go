package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	s := String()
	for _, want := range []string{"version: v1.2.3", "commit: abc123", "built: 2026-01-02", "go: go"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
	if got, want := Template(), "{{.Name}} v1.2.3 (abc123, built 2026-01-02)\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}
