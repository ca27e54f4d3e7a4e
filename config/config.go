// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

// Package config loads the tunables that govern this module's ambient
// behavior — diagnostic logging and rate limiting, and the default
// per-group counter bank size — from the environment and an optional
// config file, via github.com/spf13/viper.
//
// None of these tunables affect the AST, the serialization algorithm,
// or the action contract's semantics (§7 "serialization cannot fail"
// and the action precedence rules hold unconditionally). Of them, only
// the log level and encoding take effect, through [Apply]; the counter
// bank size and the rate-limit values are loaded and returned but not
// read by any other package of this module.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pfq-lang/pfq/internal/diag"
)

// Config holds every tunable this module reads at startup.
type Config struct {
	// QMaxCounters is the configured per-group counter bank size (§4.5,
	// §9 open question). action.NewGroupContext takes its size as an
	// explicit argument and does not read this field.
	QMaxCounters int `mapstructure:"q_max_counters"`

	// DiagRateLimit (events per second) and DiagRateBurst describe a
	// rate limit for precedence-violation diagnostics (§7). Apply does
	// not install them: the action package's precedence limiter is
	// fixed at one event per second with a burst of one.
	DiagRateLimit float64 `mapstructure:"diag_rate_limit"`
	DiagRateBurst int     `mapstructure:"diag_rate_burst"`

	// LogLevel is a zapcore level name: "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log_level"`
	// LogEncoding is "json" or "console", passed straight to zap.
	LogEncoding string `mapstructure:"log_encoding"`
}

// Default returns the configuration this module uses when nothing
// overrides it: a 64-slot counter bank (§9 open question, decided in
// DESIGN.md), one diagnostic per second after a burst of one, info
// level, JSON encoding.
func Default() Config {
	return Config{
		QMaxCounters:  64,
		DiagRateLimit: 1,
		DiagRateBurst: 1,
		LogLevel:      "info",
		LogEncoding:   "json",
	}
}

// Load reads configuration from, in increasing priority: Default(), an
// optional config file named "pfq" located via configPaths (searched
// for pfq.yaml/.json/.toml/etc, viper's usual convention), and
// environment variables prefixed PFQ_ (e.g. PFQ_Q_MAX_COUNTERS).
// configPaths may be empty, in which case only env vars and defaults
// apply.
func Load(configPaths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("pfq")
	v.SetEnvPrefix("pfq")
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("q_max_counters", def.QMaxCounters)
	v.SetDefault("diag_rate_limit", def.DiagRateLimit)
	v.SetDefault("diag_rate_burst", def.DiagRateBurst)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_encoding", def.LogEncoding)

	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	if len(configPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return Config{}, fmt.Errorf("config: reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return cfg, nil
}

// Apply wires cfg's logging settings into internal/diag: it builds a
// zap.Logger at the configured level/encoding and installs it as the
// package-level logger, so every TraceIndex call and precedence-violation
// warning across this module picks it up. The other fields of cfg are
// not applied.
func Apply(cfg Config) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("config: invalid log_level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = cfg.LogEncoding

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("config: building logger: %w", err)
	}
	diag.SetLogger(logger)
	return nil
}

// DiagLimiterInterval is the time.Duration between allowed diagnostics
// implied by cfg.DiagRateLimit once cfg.DiagRateBurst is exhausted. It
// is purely informational: no rate.Limiter is built from cfg.
func DiagLimiterInterval(cfg Config) time.Duration {
	if cfg.DiagRateLimit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / cfg.DiagRateLimit)
}
