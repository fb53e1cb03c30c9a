package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. UICONVERT_TOOL_COMMAND.
const EnvPrefix = "UICONVERT"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"tool":             "tool_command",
	"ext":              "target_extension",
	"timeout":          "timeout_seconds",
	"min-tool-version": "min_tool_version",
	"log-file":         "log_file",
	"log-level":        "log_level",
}

// ApplyOverrides layers environment variables and changed flags on top of cfg.
// Precedence is flags, then environment, then the loaded file values.
func ApplyOverrides(cfg Config, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("tool_command", cfg.ToolCommand)
	v.SetDefault("target_extension", cfg.TargetExtension)
	v.SetDefault("timeout_seconds", cfg.TimeoutSeconds)
	v.SetDefault("min_tool_version", cfg.MinToolVersion)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return cfg, fmt.Errorf("error binding flag '--%s': %w", name, err)
			}
		}
	}

	out := cfg
	out.ToolCommand = v.GetString("tool_command")
	out.TargetExtension = v.GetString("target_extension")
	out.TimeoutSeconds = v.GetInt("timeout_seconds")
	out.MinToolVersion = v.GetString("min_tool_version")
	out.LogFile = v.GetString("log_file")
	out.LogLevel = v.GetString("log_level")

	if err := out.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return out, nil
}
