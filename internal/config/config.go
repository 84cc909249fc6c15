// Package config loads the settings of the echo server.
package config

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Config holds the echo server settings.
type Config struct {
	// Address the server listens on.
	Addr string

	// Minimum level written by the logger.
	LogLevel zerolog.Level

	// Whether error responses carry the spanerrors headers.
	ErrorHeaders bool

	// Upper bound on reading request headers.
	ReadHeaderTimeout time.Duration

	// How long shutdown waits for in-flight requests.
	ShutdownTimeout time.Duration
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Addr:              "127.0.0.1:8080",
		LogLevel:          zerolog.InfoLevel,
		ErrorHeaders:      false,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

type fileConfig struct {
	Addr              string `toml:"addr"`
	LogLevel          string `toml:"log_level"`
	ErrorHeaders      bool   `toml:"error_headers"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Load reads a TOML file over Default. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, xerrors.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, xerrors.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}

	if meta.IsDefined("log_level") {
		level, err := zerolog.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Config{}, xerrors.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = level
	}

	if meta.IsDefined("error_headers") {
		cfg.ErrorHeaders = raw.ErrorHeaders
	}

	if meta.IsDefined("read_header_timeout") {
		duration, err := time.ParseDuration(strings.TrimSpace(raw.ReadHeaderTimeout))
		if err != nil {
			return Config{}, xerrors.Errorf("parse read_header_timeout: %w", err)
		}
		cfg.ReadHeaderTimeout = duration
	}

	if meta.IsDefined("shutdown_timeout") {
		duration, err := time.ParseDuration(strings.TrimSpace(raw.ShutdownTimeout))
		if err != nil {
			return Config{}, xerrors.Errorf("parse shutdown_timeout: %w", err)
		}
		cfg.ShutdownTimeout = duration
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would keep the server from starting.
func (cfg Config) Validate() error {
	if cfg.Addr == "" {
		return xerrors.New("addr must not be empty")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return xerrors.New("read_header_timeout must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return xerrors.New("shutdown_timeout must be positive")
	}
	return nil
}
