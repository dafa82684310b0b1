// Package version exposes the build metadata stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time through -ldflags, for example:
//
//	go build -ldflags "-X github.com/teranos/jsongen/version.Version=v0.3.0"
var (
	CommitHash = "dev"     // git commit the binary was built from
	BuildTime  = "unknown" // build timestamp
	Version    = "dev"     // semantic version when built from a tag
)

// Info is the full build description, shaped for the version command's
// JSON output.
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get collects the stamped values plus the runtime facts.
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line form printed by the version command.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	return fmt.Sprintf("jsongen %s (commit %s, built %s)", v, i.CommitHash, i.BuildTime)
}
