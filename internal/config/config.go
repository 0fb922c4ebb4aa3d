// Package config loads the console's settings from an optional config
// file, an optional .env file and KONZOLA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment variable, e.g. KONZOLA_BACKEND_URL.
const EnvPrefix = "KONZOLA"

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Backend struct {
		URL     string
		Timeout time.Duration
	} `mapstructure:"backend"`

	DB struct {
		Path string
	} `mapstructure:"db"`

	Log struct {
		Path   string
		Format string
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Session struct {
		MaxAge time.Duration `mapstructure:"max_age"`
		// Secure marks the session cookie Secure; set behind TLS.
		Secure bool
	} `mapstructure:"session"`
}

// Dev reports whether the console runs in development mode.
func (c Config) Dev() bool {
	return c.App.Env == "dev"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("db.path", "konzola.sqlite3")
	v.SetDefault("log.path", "")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("session.max_age", 7*24*time.Hour)
	v.SetDefault("session.secure", false)
}

// Load reads envFile (when it exists) into the environment, then path (when
// non-empty) and the environment into a Config. Variables already set in
// the environment win over envFile.
func Load(path, envFile string) (Config, error) {
	var c Config

	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend.url is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive")
	}
	if c.Session.MaxAge <= 0 {
		return errors.New("session.max_age must be positive")
	}
	return nil
}
