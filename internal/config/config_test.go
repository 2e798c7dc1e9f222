package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Watch.Namespace != "default" {
		t.Errorf("expected namespace 'default', got %s", cfg.Watch.Namespace)
	}

	if cfg.Watch.IdleTimeout != "30s" {
		t.Errorf("expected idle_timeout '30s', got %s", cfg.Watch.IdleTimeout)
	}

	if cfg.Watch.BackoffInitialDelay != "1s" {
		t.Errorf("expected backoff_initial_delay '1s', got %s", cfg.Watch.BackoffInitialDelay)
	}

	if cfg.Performance.MaxBufferedItems != 500 {
		t.Errorf("expected max_buffered_items 500, got %d", cfg.Performance.MaxBufferedItems)
	}

	if cfg.TUI.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %s", cfg.TUI.Theme)
	}

	if len(cfg.TUI.Quit) != 2 {
		t.Errorf("expected 2 quit keybindings, got %d", len(cfg.TUI.Quit))
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}

	// Should return default config
	if cfg.Watch.Namespace != "default" {
		t.Errorf("expected default namespace 'default', got %s", cfg.Watch.Namespace)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Watch.Namespace = "kube-system"
	cfg.Watch.IdleTimeout = "10s"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loadedCfg.Watch.Namespace != "kube-system" {
		t.Errorf("expected namespace 'kube-system', got %s", loadedCfg.Watch.Namespace)
	}

	if loadedCfg.Watch.IdleTimeout != "10s" {
		t.Errorf("expected idle_timeout '10s', got %s", loadedCfg.Watch.IdleTimeout)
	}
}

func TestGetIdleTimeout(t *testing.T) {
	cfg := DefaultConfig()

	duration := cfg.GetIdleTimeout()
	expected := 30 * time.Second

	if duration != expected {
		t.Errorf("expected %v, got %v", expected, duration)
	}
}

func TestGetIdleTimeoutInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Watch.IdleTimeout = "invalid"

	duration := cfg.GetIdleTimeout()
	expected := 30 * time.Second // Default fallback

	if duration != expected {
		t.Errorf("expected fallback %v, got %v", expected, duration)
	}
}

func TestGetBackoffDelays(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.GetBackoffInitialDelay(); got != 1*time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
	if got := cfg.GetBackoffMaxDelay(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
}

func TestGetBackoffInitialDelayInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Watch.BackoffInitialDelay = "not-a-duration"

	if got := cfg.GetBackoffInitialDelay(); got != 1*time.Second {
		t.Errorf("expected fallback 1s, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modifyFn  func(*Config)
		expectErr bool
	}{
		{
			name:      "valid config",
			modifyFn:  func(_ *Config) {},
			expectErr: false,
		},
		{
			name: "invalid theme",
			modifyFn: func(c *Config) {
				c.TUI.Theme = "invalid"
			},
			expectErr: true,
		},
		{
			name: "invalid idle timeout",
			modifyFn: func(c *Config) {
				c.Watch.IdleTimeout = "not-a-duration"
			},
			expectErr: true,
		},
		{
			name: "invalid backoff max delay",
			modifyFn: func(c *Config) {
				c.Watch.BackoffMaxDelay = "not-a-duration"
			},
			expectErr: true,
		},
		{
			name: "backoff multiplier too small",
			modifyFn: func(c *Config) {
				c.Watch.BackoffMultiplier = 1.0
			},
			expectErr: true,
		},
		{
			name: "backoff jitter out of range",
			modifyFn: func(c *Config) {
				c.Watch.BackoffJitter = 1.5
			},
			expectErr: true,
		},
		{
			name: "max buffered items too small",
			modifyFn: func(c *Config) {
				c.Performance.MaxBufferedItems = 5
			},
			expectErr: true,
		},
		{
			name: "max buffered items too large",
			modifyFn: func(c *Config) {
				c.Performance.MaxBufferedItems = 20000
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modifyFn(cfg)

			err := cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}
}

func TestLoadWithMissingFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `watch:
  namespace: kube-system
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Watch.IdleTimeout != "30s" {
		t.Errorf("expected default idle_timeout '30s', got %s", cfg.Watch.IdleTimeout)
	}

	if cfg.Performance.MaxBufferedItems != 500 {
		t.Errorf("expected default max_buffered_items 500, got %d", cfg.Performance.MaxBufferedItems)
	}
}
