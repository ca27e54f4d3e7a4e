// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 64, cfg.QMaxCounters)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogEncoding)
}

func TestLoadWithNoConfigFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PFQ_Q_MAX_COUNTERS", "128")
	t.Setenv("PFQ_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.QMaxCounters)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestApplyRejectsInvalidLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "not-a-level"
	err := Apply(cfg)
	assert.Error(t, err)
}

func TestApplyAcceptsDefault(t *testing.T) {
	err := Apply(Default())
	assert.NoError(t, err)
}
