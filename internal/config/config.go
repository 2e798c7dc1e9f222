package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Watch       WatchConfig       `yaml:"watch"`
	Performance PerformanceConfig `yaml:"performance"`
	TUI         TUIConfig         `yaml:"tui"`
	Debug       bool              `yaml:"debug"`
}

// WatchConfig holds the connection and reconnection parameters a watch
// session is built from.
type WatchConfig struct {
	Kubeconfig          string  `yaml:"kubeconfig"`           // path to kubeconfig, "" resolves via $KUBECONFIG / ~/.kube/config
	Context             string  `yaml:"context"`              // kubeconfig context override, "" uses current-context
	Namespace           string  `yaml:"namespace"`            // default namespace for namespaced resources
	IdleTimeout         string  `yaml:"idle_timeout"`         // socket read timeout before a stalled watch reports NoData (e.g. "30s")
	BackoffInitialDelay string  `yaml:"backoff_initial_delay"` // first reconnect delay (e.g. "1s")
	BackoffMaxDelay     string  `yaml:"backoff_max_delay"`    // reconnect delay ceiling (e.g. "30s")
	BackoffMultiplier   float64 `yaml:"backoff_multiplier"`   // per-attempt growth factor
	BackoffJitter       float64 `yaml:"backoff_jitter"`       // fraction of each delay that jitter may shave off (never adds)
}

// PerformanceConfig holds performance-related configuration
type PerformanceConfig struct {
	MaxBufferedItems int `yaml:"max_buffered_items"` // defaulted and validated only; no command reads it (output is unbuffered)
}

// TUIConfig holds configuration for the live-watch demo viewer
type TUIConfig struct {
	Theme       string   `yaml:"theme"` // Options: dark, light, auto
	Quit        []string `yaml:"quit"`
	Help        []string `yaml:"help"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			Namespace:           "default",
			IdleTimeout:         "30s",
			BackoffInitialDelay: "1s",
			BackoffMaxDelay:     "30s",
			BackoffMultiplier:   2.0,
			BackoffJitter:       0.1,
		},
		Performance: PerformanceConfig{
			MaxBufferedItems: 500,
		},
		TUI: TUIConfig{
			Theme: "dark",
			Quit:  []string{"q", "ctrl+c"},
			Help:  []string{"?"},
		},
	}
}

// Load reads the configuration file and returns a Config struct
// If the file doesn't exist, it returns the default configuration
func Load(configPath string) (*Config, error) {
	// If no path specified, use default
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		configPath = filepath.Join(homeDir, ".k8s-watch", "config.yaml")
	}

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate and set defaults for missing fields
	if cfg.Watch.Namespace == "" {
		cfg.Watch.Namespace = "default"
	}
	if cfg.Watch.IdleTimeout == "" {
		cfg.Watch.IdleTimeout = "30s"
	}
	if cfg.Watch.BackoffInitialDelay == "" {
		cfg.Watch.BackoffInitialDelay = "1s"
	}
	if cfg.Watch.BackoffMaxDelay == "" {
		cfg.Watch.BackoffMaxDelay = "30s"
	}
	if cfg.Watch.BackoffMultiplier == 0 {
		cfg.Watch.BackoffMultiplier = 2.0
	}
	if cfg.Performance.MaxBufferedItems == 0 {
		cfg.Performance.MaxBufferedItems = 500
	}
	if cfg.TUI.Theme == "" {
		cfg.TUI.Theme = "dark"
	}
	if len(cfg.TUI.Quit) == 0 {
		cfg.TUI.Quit = []string{"q", "ctrl+c"}
	}
	if len(cfg.TUI.Help) == 0 {
		cfg.TUI.Help = []string{"?"}
	}

	return &cfg, nil
}

// Save writes the configuration to a file
func (c *Config) Save(configPath string) error {
	// If no path specified, use default
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".k8s-watch", "config.yaml")
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetIdleTimeout parses and returns the idle read timeout as time.Duration
func (c *Config) GetIdleTimeout() time.Duration {
	duration, err := time.ParseDuration(c.Watch.IdleTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// GetBackoffInitialDelay parses and returns the initial reconnect delay
func (c *Config) GetBackoffInitialDelay() time.Duration {
	duration, err := time.ParseDuration(c.Watch.BackoffInitialDelay)
	if err != nil {
		return 1 * time.Second
	}
	return duration
}

// GetBackoffMaxDelay parses and returns the reconnect delay ceiling
func (c *Config) GetBackoffMaxDelay() time.Duration {
	duration, err := time.ParseDuration(c.Watch.BackoffMaxDelay)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[c.TUI.Theme] {
		return fmt.Errorf("invalid theme: %s (must be dark, light, or auto)", c.TUI.Theme)
	}

	if _, err := time.ParseDuration(c.Watch.IdleTimeout); err != nil {
		return fmt.Errorf("invalid idle_timeout: %s", c.Watch.IdleTimeout)
	}
	if _, err := time.ParseDuration(c.Watch.BackoffInitialDelay); err != nil {
		return fmt.Errorf("invalid backoff_initial_delay: %s", c.Watch.BackoffInitialDelay)
	}
	if _, err := time.ParseDuration(c.Watch.BackoffMaxDelay); err != nil {
		return fmt.Errorf("invalid backoff_max_delay: %s", c.Watch.BackoffMaxDelay)
	}
	if c.Watch.BackoffMultiplier <= 1.0 {
		return fmt.Errorf("invalid backoff_multiplier: %v (must be > 1.0)", c.Watch.BackoffMultiplier)
	}
	if c.Watch.BackoffJitter < 0 || c.Watch.BackoffJitter > 1 {
		return fmt.Errorf("invalid backoff_jitter: %v (must be between 0 and 1)", c.Watch.BackoffJitter)
	}

	if c.Performance.MaxBufferedItems < 10 || c.Performance.MaxBufferedItems > 10000 {
		return fmt.Errorf("invalid max_buffered_items: %d (must be between 10 and 10000)", c.Performance.MaxBufferedItems)
	}

	return nil
}
