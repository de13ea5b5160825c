// Package version exposes the build version of hostsnap.
package version

import "runtime/debug"

// Version is overridden at link time:
//
//	go build -ldflags "-X github.com/five82/hostsnap/internal/version.Version=v1.2.0"
var Version = ""

// String returns the linked version, the module version recorded by go install,
// or "dev".
func String() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// UserAgent is sent on every API request.
func UserAgent() string {
	return "hostsnap/" + String()
}
