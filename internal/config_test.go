package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/perhult/reelsync/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Sync.Mappings) == 0 {
		t.Error("default config has no field mappings")
	}
}

func TestConfig_MergesMissingMappings(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Sync.Mappings = cfg.Sync.Mappings[:2]
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Sync.Mappings) <= 2 {
		t.Errorf("mappings not merged: %d entries", len(cfg.Sync.Mappings))
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("port 0 should fail")
	}
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("port 70000 should fail")
	}
}

func TestOMDbConfig_Delay(t *testing.T) {
	cfg := OMDbConfig{RequestDelayMS: 1500}
	if got := cfg.Delay(); got != 1500*time.Millisecond {
		t.Errorf("delay = %v", got)
	}
	cfg.RequestDelayMS = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative delay should fail")
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestLoadConfig_FromYAML(t *testing.T) {
	t.Setenv("TEST_OMDB_KEY", "k-from-env")

	raw := `
vault:
  path: /tmp/vault
omdb:
  api_key: ${TEST_OMDB_KEY}
  request_delay_ms: 250
sync:
  identifier_property: imdb
  rename_on_sync: true
auth:
  mode: token
  token: secret
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OMDb.APIKey != "k-from-env" {
		t.Errorf("api key = %q, env not expanded", cfg.OMDb.APIKey)
	}
	if cfg.OMDb.RequestDelayMS != 250 {
		t.Errorf("delay = %d", cfg.OMDb.RequestDelayMS)
	}
	if cfg.Sync.IdentifierProperty != "imdb" || !cfg.Sync.RenameOnSync {
		t.Errorf("sync section = %+v", cfg.Sync)
	}
	// Defaults survive for untouched sections.
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("port = %d", cfg.App.HTTP.Port)
	}
	// Mappings merged in during validation.
	if len(cfg.Sync.Mappings) == 0 {
		t.Error("mappings missing after load")
	}
}

func TestLoadIfExists_MissingFileUsesDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	found, err := pkgconfig.LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"), cfg)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if found {
		t.Error("found should be false for missing file")
	}
	if cfg.Vault.Path != "./vault" {
		t.Errorf("defaults clobbered: %+v", cfg.Vault)
	}
}
