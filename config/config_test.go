package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Grading.Concurrency)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "host=localhost user= password= dbname= port=5432 sslmode=disable", cfg.Database.DSN())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	v.Set("GRADING_CONCURRENCY", 8)
	v.Set("REDIS_URL", "redis://localhost:6379/0")

	cfg := fromViper(v)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 8, cfg.Grading.Concurrency)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}
