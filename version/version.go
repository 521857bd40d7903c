package version

import "fmt"

// set via ldflags during build
var (
	Version   = "v0.3.0"
	GitCommit = "none"
	BuildDate = "unknown"
)

var FullVersion = fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
