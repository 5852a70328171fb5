// Package config loads bootcamp settings through Viper.
//
// Values come from, in order of precedence: command-line flags bound with
// viper.BindPFlag, BOOTCAMP_<SECTION>_<OPTION> environment variables, an
// optional .bootcamp.yml file and finally the defaults registered here.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment override.
const EnvPrefix = "BOOTCAMP"

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	Users     UsersConfig     `mapstructure:"users"`
	Match     MatchConfig     `mapstructure:"match"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	UI        UIConfig        `mapstructure:"ui"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TasksConfig struct {
	Addr  string `mapstructure:"addr"`
	Data  string `mapstructure:"data"`  // optional JSON snapshot file
	Token string `mapstructure:"token"` // optional bearer token
}

type UsersConfig struct {
	Addr string `mapstructure:"addr"`
	Kind string `mapstructure:"kind"` // native, router or empty to ask
}

type MatchConfig struct {
	Events   int           `mapstructure:"events"`
	Interval time.Duration `mapstructure:"interval"`
	Listen   string        `mapstructure:"listen"` // websocket feed address, empty disables
	Fans     []string      `mapstructure:"fans"`
}

type SeedConfig struct {
	DB      string `mapstructure:"db"`
	Fixture string `mapstructure:"fixture"` // empty uses the built-in fixture
}

type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP/HTTP endpoint, empty disables tracing
	Service  string `mapstructure:"service"`
}

type UIConfig struct {
	Theme   string `mapstructure:"theme"` // classic, neon or mono
	NoColor bool   `mapstructure:"no_color"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("tasks.addr", ":3000")
	v.SetDefault("users.addr", ":3000")
	v.SetDefault("match.events", 5)
	v.SetDefault("match.interval", 1500*time.Millisecond)
	v.SetDefault("match.fans", []string{"Real Madrid", "Barcelona"})
	v.SetDefault("seed.db", "bootcamp-docs.db")
	v.SetDefault("telemetry.service", "bootcamp")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.no_color", false)

	// Unmarshal only sees keys viper knows about, so optional settings
	// get an explicit zero value to stay reachable from the environment.
	for _, key := range []string{"tasks.data", "tasks.token", "users.kind", "match.listen", "seed.fixture", "telemetry.endpoint"} {
		v.SetDefault(key, "")
	}
}

// Init prepares v to read the config file and environment overrides.
// A missing config file is not an error.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bootcamp")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && file == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command can run with. users.kind is left
// to the serve command, which answers an unknown kind on its own terms.
func (c *Config) Validate() error {
	if c.Match.Events < 0 {
		return fmt.Errorf("match.events must not be negative, got %d", c.Match.Events)
	}
	if c.Match.Interval < 0 {
		return fmt.Errorf("match.interval must not be negative, got %s", c.Match.Interval)
	}
	return nil
}
