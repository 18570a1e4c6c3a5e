package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/jose-valero/discord-interactions-demo/internal/app"
	"github.com/jose-valero/discord-interactions-demo/internal/infra/config"
)

type event struct {
	Force bool `json:"force"`
}

func handler(ctx context.Context, evt event) (string, error) {
	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return "", err
	}
	logger := app.NewLogger(cfg)

	dbCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := app.OpenDB(dbCtx, cfg)
	cancel()
	if err != nil {
		return "", err
	}
	if db != nil {
		defer db.Close()
	}

	reg, err := app.BuildRegistration(cfg, db, logger)
	if err != nil {
		return "", err
	}
	res, err := reg.Sync(ctx, evt.Force)
	if err != nil {
		return "", err
	}
	if res.Skipped {
		return "unchanged " + res.SchemaHash, nil
	}
	return fmt.Sprintf("registered %v (%s)", res.Commands, res.SchemaHash), nil
}

func main() {
	// fuera de Lambda: go run ./cmd/register [-force]
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load()
		force := len(os.Args) > 1 && os.Args[1] == "-force"
		out, err := handler(context.Background(), event{Force: force})
		if err != nil {
			log.Fatalf("register: %v", err)
		}
		log.Println(out)
		return
	}
	lambda.Start(handler)
}
