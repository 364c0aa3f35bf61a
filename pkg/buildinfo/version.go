// Package buildinfo reports the version floatplace was built from.
//
// The variables are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/floatplace/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/floatplace/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/floatplace/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/floatplace
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git revision.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns a multi-line summary including the Go toolchain.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}
