package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
api:
  host: "127.0.0.1"
  port: 9090
bridge:
  url: "http://bridge.local:8090/mcp"
  timeout: 10
netbox:
  base_url: "http://netbox.local:8080"
  token: "abc123"
inventory:
  default_limit: 50
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 9090)
	}
	if cfg.Bridge.URL != "http://bridge.local:8090/mcp" {
		t.Errorf("Bridge.URL = %q, want %q", cfg.Bridge.URL, "http://bridge.local:8090/mcp")
	}
	if cfg.NetBox.Token != "abc123" {
		t.Errorf("NetBox.Token = %q, want %q", cfg.NetBox.Token, "abc123")
	}
	if cfg.Inventory.DefaultLimit != 50 {
		t.Errorf("Inventory.DefaultLimit = %d, want %d", cfg.Inventory.DefaultLimit, 50)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults for missing file", err)
	}

	if cfg.Bridge.URL == "" {
		t.Error("Bridge.URL default should not be empty")
	}
	if cfg.Inventory.DefaultLimit != 200 {
		t.Errorf("Inventory.DefaultLimit = %d, want %d", cfg.Inventory.DefaultLimit, 200)
	}
	if cfg.Bridge.GetTimeout().Seconds() != 30 {
		t.Errorf("Bridge.GetTimeout() = %v, want 30s", cfg.Bridge.GetTimeout())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NETBRIDGE_BRIDGE_URL", "http://override:9000/mcp")
	t.Setenv("NETBRIDGE_NETBOX_BASE", "http://netbox-env:8080")
	t.Setenv("NETBRIDGE_NETBOX_TOKEN", "env-token")
	t.Setenv("NETBRIDGE_LOG_LEVEL", "debug")

	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Bridge.URL != "http://override:9000/mcp" {
		t.Errorf("Bridge.URL = %q, want env override", cfg.Bridge.URL)
	}
	if cfg.NetBox.BaseURL != "http://netbox-env:8080" {
		t.Errorf("NetBox.BaseURL = %q, want env override", cfg.NetBox.BaseURL)
	}
	if cfg.NetBox.Token != "env-token" {
		t.Errorf("NetBox.Token = %q, want env override", cfg.NetBox.Token)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want env override", cfg.Logging.Level)
	}
}

func TestValidate_NetBoxHalfConfigured(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		wantErr bool
	}{
		{"both set", "http://netbox:8080", "tok", false},
		{"neither set", "", "", false},
		{"base only", "http://netbox:8080", "", true},
		{"token only", "", "tok", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.NetBox.BaseURL = tt.baseURL
			cfg.NetBox.Token = tt.token

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "must be set together") {
				t.Errorf("Validate() error = %v, want set-together message", err)
			}
		})
	}
}

func TestValidate_BridgeURLRequired(t *testing.T) {
	cfg := defaultConfig()
	cfg.Bridge.URL = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() expected error for empty bridge.url, got nil")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWT.Secret = "too-short"

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}
