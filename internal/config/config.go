// Package config loads application configuration from the environment and
// initializes logging.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration. Values come from INNERVOICE_*
// environment variables; flags may override them at the CLI layer.
type Config struct {
	ServiceURL  string        `envconfig:"SERVICE_URL" default:"http://localhost:8980"`
	DataDir     string        `envconfig:"DATA_DIR"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Offline     bool          `envconfig:"OFFLINE" default:"false"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("INNERVOICE", &cfg); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.DataDir = ".innervoice"
		} else {
			cfg.DataDir = filepath.Join(home, ".innervoice")
		}
	}
	return &cfg, nil
}

// StorePath is where the on-device key/value store lives.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "innervoice.db")
}

// Init initializes logging from the configured level.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(parseLevel(c.LogLevel))
}

// InitLogger configures zerolog for text-based output with no coloring.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

// SetLogLevel sets the global log level for zerolog.
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
