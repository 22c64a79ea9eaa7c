// Package build holds build metadata injected via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/sweepproject/sweep/internal/sweepctl/build.GitCommit=$(git rev-parse HEAD)"
//
// The mage Build target sets all four values.
package build

var (
	ReleaseVersion = "UNKNOWN"
	GitCommit      = "UNKNOWN"
	GoVersion      = "UNKNOWN"
	BuildTime      = "UNKNOWN"
)
