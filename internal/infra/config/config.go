package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DiscordPublicKey ed25519.PublicKey // DISCORD_PUBLIC_KEY (hex), para validar firmas
	DiscordToken     string            // opcional, sólo para registrar comandos
	DiscordAppID     string
	DiscordGuild     string // vacío = comandos globales

	PublicURL    string // base del link "Ver registro"
	HTTPAddr     string // opcional, default :8080
	DatabaseURL  string // opcional: historial de registración de comandos
	LogLevel     slog.Level
	RegisterCmds bool // registrar comandos al arrancar cmd/bot

	RecallRetention time.Duration
	RecallLenient   bool
	RecallRateLimit time.Duration // 0 = sin límite
}

// Load lee el entorno y corta el proceso si falta algo obligatorio.
func Load() Config {
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func FromEnv(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	keyHex := get("DISCORD_PUBLIC_KEY", "")
	if keyHex == "" {
		return Config{}, fmt.Errorf("missing env DISCORD_PUBLIC_KEY")
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return Config{}, fmt.Errorf("DISCORD_PUBLIC_KEY must be %d hex-encoded bytes", ed25519.PublicKeySize)
	}

	retention, err := seconds(get("RECALL_RETENTION_SECONDS", "900"))
	if err != nil {
		return Config{}, fmt.Errorf("RECALL_RETENTION_SECONDS: %w", err)
	}
	rateMS, err := strconv.Atoi(get("RECALL_RATE_LIMIT_MS", "0"))
	if err != nil || rateMS < 0 {
		return Config{}, fmt.Errorf("RECALL_RATE_LIMIT_MS: invalid value %q", get("RECALL_RATE_LIMIT_MS", ""))
	}
	lenient, err := boolean(get("RECALL_LENIENT_MATCH", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("RECALL_LENIENT_MATCH: %w", err)
	}
	register, err := boolean(get("REGISTER_COMMANDS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("REGISTER_COMMANDS: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		DiscordPublicKey: ed25519.PublicKey(key),
		DiscordToken:     get("DISCORD_BOT_TOKEN", ""),
		DiscordAppID:     get("DISCORD_APP_ID", ""),
		DiscordGuild:     get("DISCORD_GUILD_ID", ""),
		PublicURL:        strings.TrimRight(get("PUBLIC_URL", "http://localhost:8080"), "/"),
		HTTPAddr:         get("HTTP_ADDR", ":8080"),
		DatabaseURL:      get("DATABASE_URL", ""),
		LogLevel:         level,
		RegisterCmds:     register,
		RecallRetention:  retention,
		RecallLenient:    lenient,
		RecallRateLimit:  time.Duration(rateMS) * time.Millisecond,
	}
	if cfg.RegisterCmds && (cfg.DiscordToken == "" || cfg.DiscordAppID == "") {
		return Config{}, fmt.Errorf("REGISTER_COMMANDS needs DISCORD_BOT_TOKEN and DISCORD_APP_ID")
	}
	return cfg, nil
}

// BotAuth agrega el prefijo "Bot " si el token no lo trae.
func (c Config) BotAuth() string {
	auth := strings.TrimSpace(c.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	return auth
}

func seconds(v string) (time.Duration, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid seconds %q", v)
	}
	return time.Duration(n) * time.Second, nil
}

func boolean(v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool %q", v)
	}
	return b, nil
}
