package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jose-valero/discord-interactions-demo/internal/app"
	"github.com/jose-valero/discord-interactions-demo/internal/infra/config"
)

// Lambda detrás de API Gateway (HTTP API v2). El store vive mientras viva
// el contenedor caliente, igual que la retención en memoria de cmd/bot.
func main() {
	cfg := config.Load()
	log := app.NewLogger(cfg)

	srv, _ := app.BuildServer(cfg, log)
	log.Info("webhook listo", "public_url", cfg.PublicURL)
	lambda.Start(srv.HandleLambda)
}
