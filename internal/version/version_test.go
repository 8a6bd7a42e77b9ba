// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import (
	"runtime/debug"
	"testing"
)

func testBuildInfo() *debug.BuildInfo {
	return &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/olegiv/estofamais", Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "9f2c41be07d1a3c4e5f60718293a4b5c6d7e8f90"},
			{Key: "vcs.time", Value: "2025-06-01T10:00:00Z"},
		},
	}
}

func TestWithBuildInfo_FillsMissing(t *testing.T) {
	got := Info{Version: DevVersion, GitCommit: Unknown}.withBuildInfo(testBuildInfo()).withDefaults()

	want := Info{Version: "v0.4.0", GitCommit: "9f2c41b", BuildTime: "2025-06-01T10:00:00Z"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestWithBuildInfo_LdflagsWin(t *testing.T) {
	in := Info{Version: "v1.2.3", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"}

	if got := in.withBuildInfo(testBuildInfo()); got != in {
		t.Errorf("got %+v, want ldflags values %+v", got, in)
	}
}

func TestWithBuildInfo_DevelBuild(t *testing.T) {
	bi := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}

	got := Info{}.withBuildInfo(bi).withDefaults()

	want := Info{Version: DevVersion, GitCommit: Unknown, BuildTime: Unknown}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolve_NeverEmpty(t *testing.T) {
	info := Resolve("", "", "")

	if info.Version == "" || info.GitCommit == "" || info.BuildTime == "" {
		t.Errorf("Resolve left empty fields: %+v", info)
	}
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"}

	want := "v1.0.0 (commit: abc1234, built: 2025-01-30T12:00:00Z)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
