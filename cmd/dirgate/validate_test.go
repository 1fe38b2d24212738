package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dirgate-hq/dirgate/pkg/cli"
	"dirgate-hq/dirgate/pkg/config"
)

const testConfig = `auth:
  tenant_id: test-tenant
  client_id: test-client
  client_secret: test-secret
retry:
  max_retries: 2
`

func withConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	orig := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = orig })
}

func TestValidateConfig_Valid(t *testing.T) {
	withConfigFile(t, testConfig)

	if err := validateConfig(validateCmd, nil); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfig_MissingCredentials(t *testing.T) {
	withConfigFile(t, "retry:\n  max_retries: 2\n")

	err := validateConfig(validateCmd, nil)
	if err == nil {
		t.Fatal("expected validation failure for missing credentials")
	}
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected *cli.ConfigError, got %T", err)
	}
}

func TestRetryPolicyFromConfig(t *testing.T) {
	withConfigFile(t, testConfig)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	policy := retryPolicy(cfg.Retry)
	if policy.MaxRetries != 2 {
		t.Errorf("expected MaxRetries 2, got %d", policy.MaxRetries)
	}
	if !policy.Jitter {
		t.Error("expected jitter to default on")
	}
}
