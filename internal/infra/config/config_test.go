package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = strings.Repeat("ab", 32)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"DISCORD_PUBLIC_KEY": testKey}))
	require.NoError(t, err)

	assert.Len(t, cfg.DiscordPublicKey, 32)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, 900*time.Second, cfg.RecallRetention)
	assert.Equal(t, time.Duration(0), cfg.RecallRateLimit)
	assert.False(t, cfg.RecallLenient)
	assert.False(t, cfg.RegisterCmds)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DISCORD_PUBLIC_KEY":       testKey,
		"DISCORD_BOT_TOKEN":        "tok",
		"DISCORD_APP_ID":           "app",
		"DISCORD_GUILD_ID":         "guild",
		"PUBLIC_URL":               "https://bot.example.com/",
		"HTTP_ADDR":                ":9090",
		"RECALL_RETENTION_SECONDS": "60",
		"RECALL_RATE_LIMIT_MS":     "250",
		"RECALL_LENIENT_MATCH":     "true",
		"REGISTER_COMMANDS":        "1",
		"LOG_LEVEL":                "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://bot.example.com", cfg.PublicURL)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, time.Minute, cfg.RecallRetention)
	assert.Equal(t, 250*time.Millisecond, cfg.RecallRateLimit)
	assert.True(t, cfg.RecallLenient)
	assert.True(t, cfg.RegisterCmds)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "Bot tok", cfg.BotAuth())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing key", env: map[string]string{}},
		{name: "bad hex", env: map[string]string{"DISCORD_PUBLIC_KEY": "zz"}},
		{name: "short key", env: map[string]string{"DISCORD_PUBLIC_KEY": "abcd"}},
		{name: "bad retention", env: map[string]string{"DISCORD_PUBLIC_KEY": testKey, "RECALL_RETENTION_SECONDS": "0"}},
		{name: "bad rate", env: map[string]string{"DISCORD_PUBLIC_KEY": testKey, "RECALL_RATE_LIMIT_MS": "-1"}},
		{name: "bad bool", env: map[string]string{"DISCORD_PUBLIC_KEY": testKey, "RECALL_LENIENT_MATCH": "maybe"}},
		{name: "bad level", env: map[string]string{"DISCORD_PUBLIC_KEY": testKey, "LOG_LEVEL": "loud"}},
		{name: "register without token", env: map[string]string{"DISCORD_PUBLIC_KEY": testKey, "REGISTER_COMMANDS": "true"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestBotAuth_KeepsPrefix(t *testing.T) {
	assert.Equal(t, "Bot abc", Config{DiscordToken: " Bot abc "}.BotAuth())
}
