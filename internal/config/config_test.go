package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
mysql:
  dsn: "cafe:cafe@tcp(localhost:3306)/cafe"
auth:
  jwt_secret: "s3cret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "cafe-admin", cfg.App.Name)
	require.Equal(t, DriverMySQL, cfg.Storage.Driver)
	require.Equal(t, 8080, cfg.HTTP.Port)
	require.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "cafe.orders", cfg.Kafka.Topic)
	require.Empty(t, cfg.Kafka.BrokerList())
	require.Empty(t, cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: mysql
auth:
  jwt_secret: "s3cret"
`)
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://cafe@localhost/cafe")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, DriverPostgres, cfg.Storage.Driver)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.BrokerList())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing secret", body: "mysql:\n  dsn: x\n"},
		{name: "missing dsn for driver", body: "storage:\n  driver: mongodb\nauth:\n  jwt_secret: s\n"},
		{name: "unknown driver", body: "storage:\n  driver: sqlite\nauth:\n  jwt_secret: s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestMustLoad_PanicsWithoutPath(t *testing.T) {
	require.Panics(t, func() { MustLoad("") })
	require.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}
