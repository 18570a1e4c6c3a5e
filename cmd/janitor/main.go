package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jose-valero/discord-interactions-demo/internal/infra/storage"
)

const keep = 30 * 24 * time.Hour

func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	db, err := storage.Open(ctx, dsn)
	if err != nil {
		return fmt.Sprintf("open: %v", err), nil
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := storage.NewRegistrationRepo(db).Prune(cctx, time.Now().Add(-keep))
	if err != nil {
		return fmt.Sprintf("prune: %v", err), nil
	}
	return fmt.Sprintf("ok (%d borradas)", n), nil
}

func main() { lambda.Start(handler) }
