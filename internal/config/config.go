package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/NinhThienLuan/404-Brain-Not-Found/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	MongoURI            string        `env:"MONGO_URI,notEmpty"`
	MongoDatabase       string        `env:"MONGO_DATABASE" envDefault:"basic-hackathon"`
	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MongoPingRetry      pkgRetry.RetryConfig `envPrefix:"MONGO_PING_RETRY_"`

	// Oracle (LLM provider) configuration
	OracleCfg OracleConfig `envPrefix:"ORACLE_"`

	// Agent workflow configuration
	AgentCfg AgentConfig `envPrefix:"AGENT_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (optional, only read by cmd/telegram-bot)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// OracleConfig holds the external text-completion provider settings
type OracleConfig struct {
	Url          string        `env:"SERVICE_URL,notEmpty"`
	APIKey       string        `env:"API_KEY"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout  time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	DefaultModel string        `env:"DEFAULT_MODEL" envDefault:"gemini-2.5-flash"`
}

// AgentConfig bounds the slot-filling loop and defaults the target language
type AgentConfig struct {
	MaxRefineTurns  int    `env:"MAX_REFINE_TURNS" envDefault:"5"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"python"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string        `env:"BOT_TOKEN"`
	UpdateTimeout   int           `env:"UPDATE_TIMEOUT" envDefault:"30"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.AgentCfg.MaxRefineTurns < 1 || cfg.AgentCfg.MaxRefineTurns > 20 {
		return fmt.Errorf("AGENT_MAX_REFINE_TURNS must be between 1 and 20, got %d", cfg.AgentCfg.MaxRefineTurns)
	}

	if cfg.OracleCfg.Timeout < time.Second {
		return fmt.Errorf("ORACLE_TIMEOUT must be at least 1s, got %s", cfg.OracleCfg.Timeout)
	}

	if cfg.MongoConnectTimeout < time.Second {
		return fmt.Errorf("MONGO_CONNECT_TIMEOUT must be at least 1s, got %s", cfg.MongoConnectTimeout)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
