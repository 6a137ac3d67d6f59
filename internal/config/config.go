package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tabstrip/internal/model"
	"tabstrip/internal/tabs"
)

const EnvPrefix = "TABSTRIP"

// Config holds everything the shell needs to build a session.
type Config struct {
	MaxLabelLength int          `mapstructure:"max_label_length" validate:"gte=1,lte=10000"`
	CopySuffix     string       `mapstructure:"copy_suffix"`
	IDs            string       `mapstructure:"ids" validate:"oneof=uuid short seq"`
	LogLevel       string       `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile        string       `mapstructure:"log_file"`
	TUI            TUIConfig    `mapstructure:"tui"`
	Tabs           []model.Seed `mapstructure:"tabs" validate:"dive"`
}

type TUIConfig struct {
	// Glyphs selects the icon glyph set (unicode|ascii). Empty means unicode.
	Glyphs string `mapstructure:"glyphs" validate:"omitempty,oneof=unicode ascii"`
}

func (c Config) TabOptions() tabs.Options {
	return tabs.Options{MaxLabelLength: c.MaxLabelLength, CopySuffix: c.CopySuffix}
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"max-label-length": "max_label_length",
	"copy-suffix":      "copy_suffix",
	"ids":              "ids",
	"log-level":        "log_level",
	"log-file":         "log_file",
}

var validate = validator.New()

// DefaultPath is $XDG_CONFIG_HOME/tabstrip/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "tabstrip", "config.yaml")
}

// Load reads configuration from file, env (TABSTRIP_*) and flags, in
// increasing precedence. An explicit path must exist; the default path is
// optional.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("max_label_length", tabs.DefaultMaxLabelLength)
	v.SetDefault("copy_suffix", tabs.DefaultCopySuffix)
	v.SetDefault("ids", "uuid")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// Empty glyphs means auto; TABSTRIP_GLYPHS is the documented short form.
	if err := v.BindEnv("tui.glyphs", EnvPrefix+"_TUI_GLYPHS", EnvPrefix+"_GLYPHS"); err != nil {
		return Config{}, fmt.Errorf("bind env tui.glyphs: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			missing := errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.IDs = strings.ToLower(strings.TrimSpace(c.IDs))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.TUI.Glyphs = strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
	if !v.IsSet("tabs") {
		c.Tabs = model.DefaultSeeds()
	}
	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
