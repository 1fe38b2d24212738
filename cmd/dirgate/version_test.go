package main

import (
	"runtime"
	"testing"
)

func TestBuildInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "0.1.0-test"
	GitCommit = "abc123"
	BuildDate = "2026-08-30"

	info := buildInfo()
	if info.Version != "0.1.0-test" {
		t.Errorf("Version = %q, want %q", info.Version, "0.1.0-test")
	}
	if info.Commit != "abc123" {
		t.Errorf("Commit = %q, want %q", info.Commit, "abc123")
	}
	if info.BuildTime != "2026-08-30" {
		t.Errorf("BuildTime = %q, want %q", info.BuildTime, "2026-08-30")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.RunE == nil {
		t.Error("versionCmd.RunE should not be nil")
	}
	if versionCmd.Flags().Lookup("format") == nil {
		t.Error("version command should accept --format")
	}
}

func TestVersionRejectsUnknownFormat(t *testing.T) {
	origFormat := versionFlags.format
	defer func() { versionFlags.format = origFormat }()

	versionFlags.format = "yaml"
	if err := versionCmd.RunE(versionCmd, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
