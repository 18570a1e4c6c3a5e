package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jose-valero/discord-interactions-demo/internal/app"
	"github.com/jose-valero/discord-interactions-demo/internal/infra/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB opcional: sólo guarda el historial de registración
	dbCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := app.OpenDB(dbCtx, cfg)
	cancel()
	if err != nil {
		log.Error("db", "err", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		log.Info("✅ DB lista y migrada")
	}

	if cfg.RegisterCmds {
		reg, err := app.BuildRegistration(cfg, db, log)
		if err != nil {
			log.Error("registration", "err", err)
			os.Exit(1)
		}
		res, err := reg.Sync(ctx, false)
		if err != nil {
			log.Error("registrando comandos", "err", err)
			os.Exit(1)
		}
		log.Info("✅ comandos", "skipped", res.Skipped, "commands", res.Commands, "guild", cfg.DiscordGuild)
	}

	srv, _ := app.BuildServer(cfg, log)
	log.Info("🚀 escuchando", "addr", cfg.HTTPAddr, "public_url", cfg.PublicURL, "retention", cfg.RecallRetention)
	if err := srv.Start(ctx, cfg.HTTPAddr); err != nil {
		log.Error("http", "err", err)
		os.Exit(1)
	}
	log.Info("👋 chau")
}
