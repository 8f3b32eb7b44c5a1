// Package version reports how the running totxt binary was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds override these through the linker, for instance
//
//	-ldflags "-X github.com/makwanadeepam/totxt/pkg/version.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info describes one build.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Platform  string
}

// Get collects the build description. Commit and date fall back to the VCS
// stamp embedded by the go command when they were not set at link time.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == "":
				info.Date = s.Value
			}
		}
	}
	return info
}

// String renders "totxt <version>" followed by whichever build details are
// known, e.g. "totxt v0.3.0 (1a2b3c4, 2024-05-01T10:00:00Z, go1.25.0 linux/amd64)".
func (i Info) String() string {
	details := ""
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details += commit + ", "
	}
	if i.Date != "" {
		details += i.Date + ", "
	}
	return fmt.Sprintf("totxt %s (%s%s %s)", i.Version, details, i.GoVersion, i.Platform)
}
