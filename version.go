package dispatch

import (
	"fmt"
	"runtime"
)

// Version is the semantic version of the library, injected during
// build via ldflags. The value below is the fallback for development
// builds.
var Version = "dev"

// UserAgent returns an identification string for outbound HTTP
// requests and trace attributes.
func UserAgent() string {
	return fmt.Sprintf("bizmgr-dispatch/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
