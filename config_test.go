/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		bind:           "127.0.0.1",
		messageBurst:   10,
		messageRate:    5,
		port:           8080,
		sessionTimeout: time.Hour,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"key without cert", func(c *Config) { c.tlsKey = "key.pem" }, true},
		{"port zero", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 65536 }, true},
		{"reaper disabled", func(c *Config) { c.sessionTimeout = 0 }, false},
		{"negative timeout", func(c *Config) { c.sessionTimeout = -time.Second }, true},
		{"rate limit disabled", func(c *Config) { c.messageRate = 0 }, false},
		{"negative rate", func(c *Config) { c.messageRate = -1 }, true},
		{"zero burst", func(c *Config) { c.messageBurst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	assert.Equal(t, "https", cfg.scheme())
}

func TestNewCmdDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, "0.0.0.0", cfg.bind)
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, 60*time.Minute, cfg.sessionTimeout)
	assert.Equal(t, 5.0, cfg.messageRate)
	assert.Equal(t, 10, cfg.messageBurst)
	assert.NoError(t, cfg.validate())
}

func TestNewCmdEnvironment(t *testing.T) {
	t.Setenv("GUESSWHO_PORT", "9090")
	t.Setenv("GUESSWHO_SESSION_TIMEOUT", "15m")
	t.Setenv("GUESSWHO_MESSAGE_RATE", "0")
	t.Setenv("GUESSWHO_VERBOSE", "true")

	cfg := &Config{}
	cmd := newCmd(cfg)

	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, 15*time.Minute, cfg.sessionTimeout)
	assert.Equal(t, 0.0, cfg.messageRate)
	assert.True(t, cfg.verbose)
}

func TestNewCmdFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("GUESSWHO_PORT", "9090")

	cfg := &Config{}
	cmd := newCmd(cfg)

	require.NoError(t, cmd.ParseFlags([]string{"--port", "7070", "--prefix", "/games/"}))

	assert.Equal(t, 7070, cfg.port)
	assert.Equal(t, "/games/", cfg.prefix)
}
