package integration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"blog-service/app/config"
)

const (
	defaultPostgresHost     = "localhost"
	defaultPostgresPort     = "5433"
	defaultPostgresDB       = "blog_test_db"
	defaultPostgresUser     = "blog_test_user"
	defaultPostgresPassword = "test_password"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// TestConfig creates a configuration pointing at the test database.
func TestConfig() *config.Config {
	return &config.Config{
		Port:     "9500",
		Host:     "0.0.0.0",
		LogLevel: "debug",

		DatabaseHost:     envOr("TEST_DB_HOST", defaultPostgresHost),
		DatabasePort:     envOr("TEST_DB_PORT", defaultPostgresPort),
		DatabaseName:     envOr("TEST_DB_NAME", defaultPostgresDB),
		DatabaseUser:     envOr("TEST_DB_USER", defaultPostgresUser),
		DatabasePassword: envOr("TEST_DB_PASSWORD", defaultPostgresPassword),
		DatabaseSSLMode:  "disable",

		JWTSecret:    "integration-test-secret",
		TokenTTL:     time.Hour,
		ListCacheTTL: 5 * time.Second,
	}
}

// TestDatabaseConnection opens a pool against the test database.
func TestDatabaseConnection() (*pgxpool.Pool, error) {
	return pgxpool.New(context.Background(), TestConfig().DatabaseDSN())
}

// WaitForDatabase blocks until the test database answers or the deadline
// passes.
func WaitForDatabase(ctx context.Context) error {
	deadline := time.Now().Add(30 * time.Second)

	for time.Now().Before(deadline) {
		pool, err := TestDatabaseConnection()
		if err == nil {
			pingErr := pool.Ping(ctx)
			pool.Close()
			if pingErr == nil {
				return nil
			}
		}
		time.Sleep(time.Second)
	}

	return fmt.Errorf("test database did not become ready in time")
}
