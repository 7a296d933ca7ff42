package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Gemini   Gemini
	JWT      JWT
	Redis    Redis
	Kafka    Kafka
	Grading  Grading
	Extract  Extract
	LogLevel string
	GinMode  string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN is the postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type Gemini struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

type JWT struct {
	Secret          string
	ExpirationHours int
}

type Redis struct {
	URL             string
	CacheTTLSeconds int
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Grading struct {
	Concurrency int
}

type Extract struct {
	TimeoutSeconds int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("LLM_TIMEOUT_SECONDS", 60)
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("CACHE_TTL_SECONDS", 600)
	v.SetDefault("KAFKA_TOPIC", "assessment-events")
	v.SetDefault("GRADING_CONCURRENCY", 4)
	v.SetDefault("EXTRACT_TIMEOUT_SECONDS", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIN_MODE", "debug")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Gemini.APIKey = v.GetString("GEMINI_API_KEY")
	config.Gemini.Model = v.GetString("GEMINI_MODEL")
	config.Gemini.TimeoutSeconds = v.GetInt("LLM_TIMEOUT_SECONDS")

	config.JWT.Secret = v.GetString("JWT_SECRET")
	config.JWT.ExpirationHours = v.GetInt("JWT_EXPIRATION_HOURS")

	config.Redis.URL = v.GetString("REDIS_URL")
	config.Redis.CacheTTLSeconds = v.GetInt("CACHE_TTL_SECONDS")

	config.Kafka.Brokers = splitList(v.GetString("KAFKA_BROKERS"))
	config.Kafka.Topic = v.GetString("KAFKA_TOPIC")

	config.Grading.Concurrency = v.GetInt("GRADING_CONCURRENCY")
	config.Extract.TimeoutSeconds = v.GetInt("EXTRACT_TIMEOUT_SECONDS")

	config.LogLevel = v.GetString("LOG_LEVEL")
	config.GinMode = v.GetString("GIN_MODE")

	if config.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set. Tokens are signed with an empty key.")
	}
	log.Info().
		Str("port", config.Server.Port).
		Str("database", config.Database.Host+"/"+config.Database.Name).
		Str("model", config.Gemini.Model).
		Bool("redis", config.Redis.URL != "").
		Int("kafkaBrokers", len(config.Kafka.Brokers)).
		Int("gradingConcurrency", config.Grading.Concurrency).
		Msg("Config loaded")
	return &config
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
