package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/codefionn/fsgate/internal/consts"
)

// SandboxConfig controls the optional kernel-level hardening layer.
type SandboxConfig struct {
	// DisableLandlock turns off Landlock restriction even on kernels
	// that support it.
	DisableLandlock bool `json:"disable_landlock"`
	// BestEffort applies the strongest Landlock ruleset the running
	// kernel supports instead of failing on older kernels.
	BestEffort bool `json:"best_effort"`
}

// Config represents application configuration
type Config struct {
	// RootDir is the directory every operation is confined to.
	// Empty means the process working directory.
	RootDir string `json:"root_dir"`

	ListenAddr string `json:"listen_addr"`

	LogLevel string `json:"log_level"` // debug, info, warn, error, none
	LogPath  string `json:"log_path"`

	// AuditDBPath enables the sqlite journal of mutating operations
	// when non-empty.
	AuditDBPath string `json:"audit_db_path"`

	// MaxGrepResults caps grep output when the request does not set its
	// own limit. Zero means unlimited.
	MaxGrepResults int `json:"max_grep_results"`

	Sandbox SandboxConfig `json:"sandbox"`
}

func defaultStateDir() string {
	switch runtime.GOOS {
	case "linux":
		if stateHome := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); stateHome != "" {
			return filepath.Join(stateHome, "fsgate")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".local", "state", "fsgate")
	case "windows":
		if appData := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); appData != "" {
			return filepath.Join(appData, "fsgate")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "fsgate")
	default:
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "Library", "Application Support", "fsgate")
	}
}

// GetConfigPath returns the default location of the config file.
func GetConfigPath() string {
	if configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); configHome != "" {
		return filepath.Join(configHome, "fsgate", "config.json")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(homeDir, ".config", "fsgate", "config.json")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	stateDir := defaultStateDir()

	return &Config{
		RootDir:        "",
		ListenAddr:     "localhost:8937",
		LogLevel:       "info",
		LogPath:        filepath.Join(stateDir, "fsgate.log"),
		AuditDBPath:    "",
		MaxGrepResults: consts.MaxGrepResults,
		Sandbox: SandboxConfig{
			BestEffort: true,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return config, nil
		}
		return nil, err
	}

	// Unmarshal into default config (overrides only provided fields)
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// Ensure critical fields have defaults if still empty
	if config.ListenAddr == "" {
		config.ListenAddr = "localhost:8937"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogPath == "" {
		config.LogPath = filepath.Join(defaultStateDir(), "fsgate.log")
	}
	if config.MaxGrepResults < 0 {
		config.MaxGrepResults = 0
	}

	return config, nil
}

// Save writes the configuration to the given path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
