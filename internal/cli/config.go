package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment.
type Config struct {
	APIURL         string        `env:"BOOTCAMP_API_URL" envDefault:"http://localhost:3000"`
	Token          string        `env:"BOOTCAMP_TOKEN"`
	Timeout        time.Duration `env:"BOOTCAMP_TIMEOUT" envDefault:"10s"`
	CredentialsDir string        `env:"BOOTCAMP_CREDENTIALS_DIR"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewOptions wires the credentials store and API client described by cfg.
func NewOptions(cfg Config) (Options, error) {
	creds := Credentials{Dir: cfg.CredentialsDir}
	if creds.Dir == "" {
		var err error
		if creds, err = DefaultCredentials(); err != nil {
			return Options{}, err
		}
	}
	ti, err := creds.Token(cfg.Token)
	if err != nil {
		return Options{}, err
	}
	var token string
	if ti != nil {
		token = ti.Token
	}
	return Options{
		Client:   NewClient(cfg.APIURL, token, &http.Client{Timeout: cfg.Timeout}),
		Creds:    creds,
		EnvToken: cfg.Token,
	}, nil
}
