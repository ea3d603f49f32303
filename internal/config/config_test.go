package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	require.NoError(t, flags.Parse(args))

	v := New()
	require.NoError(t, BindFlags(v, flags))
	return Load(v).Get()
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.Owner)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":50051", cfg.GRPC.Addr)
	assert.Equal(t, 100, cfg.Journal.BatchSize)
	assert.Equal(t, 10000, cfg.Journal.QueueSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.JournalEnabled())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("FOOD_HTTP_ADDR", ":9090")
	t.Setenv("FOOD_DATABASE_DRIVER", "sqlite3")
	t.Setenv("FOOD_DATABASE_DSN", "file:journal.db")
	t.Setenv("FOOD_JOURNAL_BATCH_SIZE", "25")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "file:journal.db", cfg.Database.DSN)
	assert.Equal(t, 25, cfg.Journal.BatchSize)
	assert.True(t, cfg.JournalEnabled())
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("FOOD_OWNER", "from-env")

	cfg, err := load(t, "--owner", "from-flag", "--log-level", "debug")
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Owner)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delivery.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
owner: root
grpc:
  addr: ":6000"
redis:
  addr: "localhost:6379"
  idempotency_ttl: 90m
database:
  driver: mysql
  dsn: "root:root@tcp(localhost:3306)/delivery?parseTime=true"
`), 0o600))

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, "root", cfg.Owner)
	assert.Equal(t, ":6000", cfg.GRPC.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 90*time.Minute, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"empty owner", []string{"--owner", ""}, "owner"},
		{"unknown driver", []string{"--db-driver", "oracle", "--db-dsn", "x"}, "unsupported database driver"},
		{"driver without dsn", []string{"--db-driver", "pgx"}, "database.dsn"},
		{"zero idempotency ttl", []string{"--redis-addr", "localhost:6379", "--idempotency-ttl", "0s"}, "idempotency_ttl"},
		{"zero batch size", []string{"--db-driver", "pgx", "--db-dsn", "x", "--journal-batch-size", "0"}, "journal.batch_size"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
