package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions-demo/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions-demo/internal/adapters/httpapi"
	"github.com/jose-valero/discord-interactions-demo/internal/app/service"
	"github.com/jose-valero/discord-interactions-demo/internal/infra/config"
	"github.com/jose-valero/discord-interactions-demo/internal/infra/storage"
	"github.com/jose-valero/discord-interactions-demo/internal/observability"
)

const metricsNamespace = "interactions_demo"

// NewLogger: texto a stderr con el nivel de LOG_LEVEL.
func NewLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// BuildServer arma store + handler + router. Lo comparten cmd/bot y cmd/webhook.
func BuildServer(cfg config.Config, log *slog.Logger) (*httpapi.Server, *storage.RecallStore) {
	opts := []storage.RecallOption{}
	if cfg.RecallLenient {
		opts = append(opts, storage.WithLenientMatch())
	}
	recall := storage.NewRecallStore(cfg.RecallRetention, opts...)
	handler := discord.NewHandler(recall, cfg.PublicURL, recall.Retention(), log.With("component", "handler"))
	metrics := observability.NewMetrics(nil, metricsNamespace)

	srv := httpapi.New(cfg.DiscordPublicKey, handler, recall, metrics,
		httpapi.WithLogger(log.With("component", "http")),
		httpapi.WithRecallRateLimit(cfg.RecallRateLimit),
	)
	return srv, recall
}

// OpenDB abre y migra postgres si hay DATABASE_URL. Sin URL devuelve nil.
func OpenDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// BuildRegistration arma el servicio de registración de comandos.
// db puede ser nil.
func BuildRegistration(cfg config.Config, db *sql.DB, log *slog.Logger) (*service.RegistrationService, error) {
	s, err := discordgo.New(cfg.BotAuth())
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	var repo service.RegistrationRepo
	if db != nil {
		repo = storage.NewRegistrationRepo(db)
	}
	return service.NewRegistrationService(
		service.SessionCommands{S: s},
		repo,
		cfg.DiscordAppID,
		cfg.DiscordGuild,
		discord.Commands,
		log.With("component", "registration"),
	), nil
}
