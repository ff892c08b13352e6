package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
)

// Containers are started at most once per test binary and reaped by
// testcontainers when the process exits.
var (
	postgresOnce sync.Once
	postgresDSN  string
	postgresErr  error

	redisOnce sync.Once
	redisAddr string
	redisErr  error
)

// PostgresURL returns DATABASE_URL when set, otherwise the connection string
// of a shared disposable PostgreSQL container.
func PostgresURL(t testing.TB) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	postgresOnce.Do(func() {
		ctx := context.Background()
		container, err := tcpostgres.Run(ctx,
			postgresImage,
			tcpostgres.WithDatabase("userlinks"),
			tcpostgres.WithUsername("userlinks"),
			tcpostgres.WithPassword("userlinks"),
			tc.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			postgresErr = err
			return
		}
		postgresDSN, postgresErr = container.ConnectionString(ctx, "sslmode=disable")
	})

	if postgresErr != nil {
		t.Skipf("postgres unavailable: %v", postgresErr)
	}
	return postgresDSN
}

// StartRedis returns a client for REDIS_URL when set, otherwise for a shared
// disposable Redis container. The client is closed on cleanup.
func StartRedis(t testing.TB) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	var opt *redis.Options
	if url := os.Getenv("REDIS_URL"); url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			t.Fatalf("parse REDIS_URL: %v", err)
		}
		opt = parsed
	} else {
		redisOnce.Do(func() {
			ctx := context.Background()
			container, err := tcredis.Run(ctx, redisImage)
			if err != nil {
				redisErr = err
				return
			}
			redisAddr, redisErr = container.Endpoint(ctx, "")
		})
		if redisErr != nil {
			t.Skipf("redis unavailable: %v", redisErr)
		}
		opt = &redis.Options{Addr: redisAddr}
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() {
		_ = client.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}

	return client
}
