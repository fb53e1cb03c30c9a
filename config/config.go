package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// AppName is used for the config directory
const AppName = "tui-ui-converter"

const (
	configFileName = "config.toml"
	logFileName    = "ui-converter.log"
)

// Config holds the application settings.
type Config struct {
	ToolCommand     string `toml:"tool_command"`     // e.g. "pyuic5" or "python -m PyQt5.uic.pyuic"
	TargetExtension string `toml:"target_extension"` // without the leading dot
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	MinToolVersion  string `toml:"min_tool_version"` // empty disables the check
	LastInputDir    string `toml:"last_input_dir"`
	LogFile         string `toml:"log_file"` // empty means the default path next to the config file
	LogLevel        string `toml:"log_level"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		ToolCommand:     "pyuic5",
		TargetExtension: "py",
		TimeoutSeconds:  5,
		MinToolVersion:  "",
		LastInputDir:    "",
		LogFile:         "",
		LogLevel:        "info",
	}
}

// Timeout returns the compiler wait window.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Extension returns the target extension without a leading dot.
func (c Config) Extension() string {
	return strings.TrimPrefix(strings.TrimSpace(c.TargetExtension), ".")
}

// Validate checks the settings that would make a conversion impossible.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ToolCommand) == "" {
		return fmt.Errorf("tool command cannot be empty")
	}
	if c.Extension() == "" {
		return fmt.Errorf("target extension cannot be empty")
	}
	if strings.ContainsAny(c.Extension(), `/\`) {
		return fmt.Errorf("target extension %q must not contain path separators", c.TargetExtension)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir() // Gets ~/.config on Linux, appropriate paths on other OS
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}

	return filepath.Join(configDir, AppName, configFileName), nil
}

// LogPath returns the log file to use, falling back to one next to the config file.
func (c Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	cfgPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), logFileName), nil
}

// LoadConfig loads the configuration from the default path.
// If the file doesn't exist, it returns default settings without error.
func LoadConfig() (Config, error) {
	cfgPath, err := GetConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadConfigFrom(cfgPath)
}

// LoadConfigFrom loads the configuration from an explicit path.
func LoadConfigFrom(cfgPath string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("could not stat config file %s: %w", cfgPath, err)
	}

	if _, err := toml.DecodeFile(cfgPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config file %s: %w", cfgPath, err)
	}

	for _, p := range []*string{&cfg.LastInputDir, &cfg.LogFile} {
		expanded, err := expandHome(*p)
		if err != nil {
			return cfg, err
		}
		*p = expanded
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default path.
// It creates the config directory if it doesn't exist.
func SaveConfig(cfg Config) error {
	cfgPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(cfgPath, cfg)
}

// SaveConfigTo saves the configuration to an explicit path.
func SaveConfigTo(cfgPath string, cfg Config) error {
	appConfigDir := filepath.Dir(cfgPath)

	if err := os.MkdirAll(appConfigDir, 0750); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", appConfigDir, err)
	}

	file, err := os.Create(cfgPath)
	if err != nil {
		return fmt.Errorf("could not create config file %s: %w", cfgPath, err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("could not encode config to file %s: %w", cfgPath, err)
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return p, fmt.Errorf("could not get home directory to expand path: %w", err)
	}
	return filepath.Join(homeDir, p[1:]), nil
}
