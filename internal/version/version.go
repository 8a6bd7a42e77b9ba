// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version describes the running estofamais build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Placeholders left in fields that ldflags did not set.
const (
	DevVersion = "dev"
	Unknown    = "unknown"
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// Resolve returns the ldflags values, completing missing ones from the
// module build info that `go build` embeds.
func Resolve(version, commit, built string) Info {
	info := Info{Version: version, GitCommit: commit, BuildTime: built}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info.withDefaults()
}

func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if missing(i.Version) && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if missing(i.GitCommit) {
				i.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if missing(i.BuildTime) {
				i.BuildTime = s.Value
			}
		}
	}
	return i
}

func (i Info) withDefaults() Info {
	if missing(i.Version) {
		i.Version = DevVersion
	}
	if missing(i.GitCommit) {
		i.GitCommit = Unknown
	}
	if missing(i.BuildTime) {
		i.BuildTime = Unknown
	}
	return i
}

// String formats the info for -version output.
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}

func missing(s string) bool {
	return s == "" || s == DevVersion || s == Unknown
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
