package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type (
	APP struct {
		Name        string        `envconfig:"SERVICE_NAME" default:"userapi"`
		Host        string        `envconfig:"SERVICE_HOST" default:"0.0.0.0"`
		Port        string        `envconfig:"SERVICE_PORT" default:"8080"`
		Env         string        `envconfig:"SERVICE_ENV" default:"dev"`
		JWTSecret   string        `envconfig:"SERVICE_JWT_SECRET" required:"true"`
		TokenTTL    time.Duration `envconfig:"SERVICE_TOKEN_TTL" default:"1h"`
		BcryptCost  int           `envconfig:"SERVICE_BCRYPT_COST" default:"10"`
		AutoMigrate bool          `envconfig:"SERVICE_AUTO_MIGRATE" default:"false"`
	}
	DB struct {
		User     string `envconfig:"POSTGRES_USER"`
		Password string `envconfig:"POSTGRES_PASSWORD"`
		Name     string `envconfig:"POSTGRES_DB"`
		Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
		Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
		SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	}
	MQ struct {
		Enabled      bool   `envconfig:"RABBITMQ_ENABLED" default:"false"`
		User         string `envconfig:"RABBITMQ_USER"`
		Password     string `envconfig:"RABBITMQ_PASSWORD"`
		Vhost        string `envconfig:"RABBITMQ_VHOST" default:"/"`
		Host         string `envconfig:"RABBITMQ_HOST"`
		AmqpPort     string `envconfig:"RABBITMQ_AMQP_PORT" default:"5672"`
		Exchange     string `envconfig:"RABBITMQ_EXCHANGE" default:"users"`
		ExchangeType string `envconfig:"RABBITMQ_EXCHANGE_TYPE" default:"direct"`
		QueueName    string `envconfig:"RABBITMQ_QUEUE_NAME" default:"users.audit"`
	}
	RateLimit struct {
		RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
		Burst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
	}

	Config struct {
		App       APP
		DB        DB
		MQ        MQ
		RateLimit RateLimit
	}
)

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadDB reads only the database section, for tools that never serve HTTP.
func LoadDB() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg.DB); err != nil {
		return Config{}, fmt.Errorf("parsing db config: %w", err)
	}

	return cfg, nil
}

func (a APP) IsProd() bool { return a.Env == EnvProd || a.Env == "production" }

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
