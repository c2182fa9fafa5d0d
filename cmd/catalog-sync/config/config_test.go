package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-sync/cmd/catalog-sync/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("DATABASE_URL", "postgres://localhost/catalog")
	t.Setenv("RABBITMQ_URL", "amqp://localhost")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestUnitLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("S3_BUCKET", "catalog")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RunTimeout)
	assert.Equal(t, config.Sync{
		ChunkSize:           50,
		StoreBatchSize:      50,
		FullScanPageSize:    200,
		FullScanConcurrency: 5,
		TargetedPageSize:    50,
		TargetedConcurrency: 25,
	}, cfg.Sync)
	assert.Equal(t, "catalog-ex", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "catalog-sync.chunks", cfg.RabbitMQ.Queue)
	assert.Equal(t, "catalog.sync", cfg.RabbitMQ.RoutingKey)
	assert.Equal(t, "catalog:config:", cfg.Redis.TenantConfigPrefix)
	assert.Equal(t, config.BackendS3, cfg.Store.Backend)
	assert.Equal(t, "auto", cfg.Store.Region)
}

func TestUnitLoadEnvFile(t *testing.T) {
	setRequired(t)
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("STORE_BACKEND=redis\nCHUNK_SIZE=20\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("CHUNK_SIZE")
	})

	cfg, err := config.Load(file)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 20, cfg.Sync.ChunkSize)
}

func TestUnitLoadErrors(t *testing.T) {
	tests := map[string]struct {
		env     map[string]string
		wantErr string
	}{
		"missing bucket": {
			env:     map[string]string{"STORE_BACKEND": "s3"},
			wantErr: "S3_BUCKET is required for s3 store backend",
		},
		"unknown backend": {
			env:     map[string]string{"STORE_BACKEND": "gcs"},
			wantErr: `unknown store backend "gcs"`,
		},
		"invalid duration": {
			env:     map[string]string{"STORE_BACKEND": "redis", "RUN_TIMEOUT": "soon"},
			wantErr: "can't parse env variables",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
