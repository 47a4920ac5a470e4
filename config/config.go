package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	AppName string
	AppKey  string
	Env     string
	IsDev   bool
	Port    int

	BaseURL      string
	APIBaseURL   string
	APITimeout   time.Duration
	PageSize     int
	FeaturedSize int

	CacheURL string
	CacheTTL time.Duration

	DatabaseURL  string
	WorkerCount  int
	WorkerPoll   time.Duration
	JobAttempts  int
	SMTPHost     string
	SMTPPort     int
	SMTPLogin    string
	SMTPPassword string
	ContactEmail string
}

var Config *config

func InitConfig() error {
	godotenv.Load()
	var cfg = new(config)
	var err error

	cfg.AppName = getEnv("APP_NAME", "FindAccommodation")
	cfg.AppKey = os.Getenv("APP_KEY")
	cfg.Env = getEnv("ENV", "prod")
	cfg.IsDev = cfg.Env == "dev"

	if cfg.Port, err = getIntEnv("PORT", 3000); err != nil {
		return err
	}

	cfg.BaseURL = strings.TrimSuffix(getEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Port)), "/")
	cfg.APIBaseURL = getEnv("API_BASE_URL", "http://localhost:8000/api")
	timeout, err := getIntEnv("API_TIMEOUT_SECONDS", 10)
	if err != nil {
		return err
	}
	cfg.APITimeout = time.Duration(timeout) * time.Second

	if cfg.PageSize, err = getIntEnv("PAGE_SIZE", 4); err != nil {
		return err
	}
	if cfg.FeaturedSize, err = getIntEnv("FEATURED_SIZE", 3); err != nil {
		return err
	}

	cfg.CacheURL = os.Getenv("CACHE_URL")
	ttl, err := getIntEnv("CACHE_TTL_SECONDS", 60)
	if err != nil {
		return err
	}
	cfg.CacheTTL = time.Duration(ttl) * time.Second

	cfg.DatabaseURL = os.Getenv("DB_URI")
	if cfg.WorkerCount, err = getIntEnv("WORKER_COUNT", 1); err != nil {
		return err
	}
	poll, err := getIntEnv("WORKER_POLL_SECONDS", 5)
	if err != nil {
		return err
	}
	cfg.WorkerPoll = time.Duration(poll) * time.Second
	if cfg.JobAttempts, err = getIntEnv("JOB_MAX_ATTEMPTS", 3); err != nil {
		return err
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPPort, err = getIntEnv("SMTP_PORT", 587); err != nil {
		return err
	}
	cfg.SMTPLogin = os.Getenv("SMTP_LOGIN")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.ContactEmail = getEnv("CONTACT_EMAIL", cfg.SMTPLogin)

	if cfg.AppKey == "" {
		return fmt.Errorf("required environment variable APP_KEY is not set")
	}
	if cfg.PageSize < 1 || cfg.FeaturedSize < 1 {
		return fmt.Errorf("PAGE_SIZE and FEATURED_SIZE must be positive")
	}

	Config = cfg
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}

	return intVal, nil
}
