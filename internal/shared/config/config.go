package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-hiring/internal/shared/connection"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Postgres    connection.PostgresConfig
	RedisAddr   string
	KafkaBroker string
	JWTSecret   string
	Storage     StorageConfig
	SMTP        SMTPConfig
	Workflow    WorkflowConfig
	Server      ServerTimeouts
}

type StorageConfig struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// WorkflowConfig is the only part that can come from YAML.
type WorkflowConfig struct {
	AllowResubmitAfterApproval bool `yaml:"allow_resubmit_after_approval"`
}

type ServerTimeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

type fileConfig struct {
	Workflow *WorkflowConfig `yaml:"workflow"`
}

// Load reads the process environment. A YAML file named by
// WORKFLOW_CONFIG_PATH overrides the workflow policy when present.
func Load() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "3000"),
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Storage: StorageConfig{
			Dir:      getEnv("STORAGE_DIR", "uploads"),
			BaseURL:  getEnv("STORAGE_BASE_URL", "/uploads"),
			MaxBytes: 10 << 20,
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Server: ServerTimeouts{
			Read:  5 * time.Second,
			Write: 10 * time.Second,
			Idle:  60 * time.Second,
		},
	}

	var err error
	if cfg.SMTP.Port, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}
	if cfg.Workflow.AllowResubmitAfterApproval, err = getEnvBool("WORKFLOW_ALLOW_RESUBMIT_AFTER_APPROVAL", false); err != nil {
		return Config{}, err
	}
	if raw := os.Getenv("STORAGE_MAX_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid STORAGE_MAX_BYTES %q", raw)
		}
		cfg.Storage.MaxBytes = n
	}

	if path := os.Getenv("WORKFLOW_CONFIG_PATH"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	cfg.Storage.BaseURL = strings.TrimRight(cfg.Storage.BaseURL, "/")

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read workflow config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse workflow config: %w", err)
	}
	if fc.Workflow != nil {
		cfg.Workflow = *fc.Workflow
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return b, nil
}
