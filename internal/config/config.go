// Package config reads the daemon settings from command line flags, an
// optional config file and JOYMAP_ environment variables, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the daemon configuration.
type Config struct {
	Addr      string        `mapstructure:"addr"`
	Prefs     string        `mapstructure:"prefs"`
	GamepadDB string        `mapstructure:"gamepad-db"`
	Poll      time.Duration `mapstructure:"poll"`
	Rumble    bool          `mapstructure:"rumble"`
	Tray      bool          `mapstructure:"tray"`
}

const (
	DefaultAddr = ":8080"
	DefaultPoll = 16 * time.Millisecond
	envPrefix   = "JOYMAP"
)

// defaultDir is where preferences live unless told otherwise.
func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "joymap")
}

// Flags returns the flag set for the daemon.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("joymap", pflag.ContinueOnError)
	fs.String("addr", DefaultAddr, "HTTP listen address")
	fs.String("prefs", filepath.Join(defaultDir(), "preferences.yaml"), "player preferences file")
	fs.String("gamepad-db", "", "SDL gamepad mapping database (default: sdl_gamecontrollerdb.txt next to the preferences)")
	fs.Duration("poll", DefaultPoll, "controller polling interval")
	fs.Bool("rumble", false, "rumble each controller as it is opened")
	fs.Bool("tray", true, "show a system tray icon")
	fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	return fs
}

// Load parses args and merges them with the config file and environment.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.GamepadDB == "" {
		cfg.GamepadDB = filepath.Join(filepath.Dir(cfg.Prefs), "sdl_gamecontrollerdb.txt")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values make sense.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: listen address is empty")
	}
	if c.Prefs == "" {
		return errors.New("config: preferences path is empty")
	}
	if c.Poll <= 0 {
		return fmt.Errorf("config: poll interval %s is not positive", c.Poll)
	}
	return nil
}

// URL returns the address a local browser should open.
func (c *Config) URL() string {
	host := c.Addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host
}
