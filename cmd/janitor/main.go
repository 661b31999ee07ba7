package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Mismo barrido de retencion que corre el bot, pero fuera de banda: util
// cuando el bot estuvo caido mas tiempo que el ticker.
func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tag, err := pool.Exec(cctx, `DELETE FROM ro_requests WHERE created_at < now() - INTERVAL '15 days';`)
	if err != nil {
		return fmt.Sprintf("purge: %v", err), nil
	}
	return fmt.Sprintf("ok, %d filas", tag.RowsAffected()), nil
}

func main() { lambda.Start(handler) }
