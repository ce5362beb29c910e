package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8090, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "tradein.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Redis.BaseValueTTL)
	assert.Equal(t, "UGX", cfg.Engine.Currency)
	assert.Equal(t, "Apple", cfg.Engine.PrimaryBrand)
	assert.Equal(t, 70, cfg.Engine.AcceptMinScore)
	assert.Equal(t, 30, cfg.Engine.RejectMaxScore)
	assert.False(t, cfg.Engine.RequireAnswers)
	assert.Equal(t, ":9090", cfg.GRPCAddress())
	assert.Equal(t, ":8090", cfg.HTTPAddress())
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 50, cfg.HTTP.RateLimitRPS)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("BASE_VALUE_CACHE_TTL", "90s")
	t.Setenv("TRADEIN_REQUIRE_ANSWERS", "true")
	t.Setenv("TRADEIN_ACCEPT_MIN_SCORE", "not-a-number")
	t.Setenv("HTTP_RATE_LIMIT_RPS", "0")

	cfg := Load()

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 90*time.Second, cfg.Redis.BaseValueTTL)
	assert.True(t, cfg.Engine.RequireAnswers)
	assert.Equal(t, 70, cfg.Engine.AcceptMinScore)
	assert.Zero(t, cfg.HTTP.RateLimitRPS)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Load()
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, "JWT_SECRET"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "STORAGE_DRIVER"},
		{"missing database url", func(c *Config) { c.Storage.DatabaseURL = "" }, "DATABASE_URL"},
		{"half tls", func(c *Config) { c.TLS.CertFile = "cert.pem" }, "GRPC_TLS_CERT_FILE"},
		{"inverted thresholds", func(c *Config) { c.Engine.RejectMaxScore = 80 }, "score thresholds"},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimitRPS = -1 }, "HTTP_RATE_LIMIT_RPS"},
		{"blocklist without brokers", func(c *Config) { c.Kafka.BlocklistTopic = "stolen" }, "KAFKA_BLOCKLIST_TOPIC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("memory driver needs no database", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Driver = StorageMemory
		cfg.Storage.DatabaseURL = ""
		assert.NoError(t, cfg.Validate())
	})
}
