package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"dirgate-hq/dirgate/pkg/config"
)

func TestNew_LevelsAndFormats(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{name: "json info", cfg: config.LoggingConfig{Level: "info", Format: "json"}},
		{name: "text debug", cfg: config.LoggingConfig{Level: "debug", Format: "text"}},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud", Format: "json"}, wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := New(tt.cfg, &bytes.Buffer{})
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNew_RedactsSecrets(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _, err := New(config.LoggingConfig{Level: "info", Format: "json"}, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("acquiring token", "client_secret", "hunter2", "tenant", "contoso")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if record["client_secret"] != "[REDACTED]" {
		t.Errorf("expected secret redacted, got %v", record["client_secret"])
	}
	if record["tenant"] != "contoso" {
		t.Errorf("expected non-secret attribute preserved, got %v", record["tenant"])
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Error("secret value leaked into log output")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, levelVar, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("quiet")
	logger.Info("also quiet")
	if buf.Len() != 0 {
		t.Errorf("expected debug/info suppressed at warn level, got %q", buf.String())
	}

	logger.Warn("audible")
	if buf.Len() == 0 {
		t.Error("expected warn record to be written")
	}

	// Lowering the level takes effect without rebuilding the logger.
	buf.Reset()
	levelVar.Set(slog.LevelDebug)
	logger.Debug("now audible")
	if buf.Len() == 0 {
		t.Error("expected debug record after lowering the level")
	}
}

func TestParseLevel(t *testing.T) {
	if level, err := ParseLevel(""); err != nil || level != slog.LevelInfo {
		t.Errorf("expected empty level to default to info, got %v, %v", level, err)
	}
	if _, err := ParseLevel("nope"); err == nil {
		t.Error("expected error for unknown level")
	}
}
