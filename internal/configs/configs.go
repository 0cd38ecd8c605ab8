package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	RateLimit              int
	ShutdownTimeoutSeconds int

	JWTSecret         string
	TokenTTLMinutes   int
	NotifierWorkers   int
	NotifierQueueSize int

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	ExpirySweepSpec string
	QuotaResetSpec  string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "sahayuk.db"),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		TokenTTLMinutes:        getEnvAsInt("TOKEN_TTL_MINUTES", 24*60),
		NotifierWorkers:        getEnvAsInt("NOTIFIER_WORKERS", 2),
		NotifierQueueSize:      getEnvAsInt("NOTIFIER_QUEUE_SIZE", 256),
		RazorpayKeyID:          getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:      getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret:  getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		ExpirySweepSpec:        getEnv("EXPIRY_SWEEP_CRON", "@every 1h"),
		QuotaResetSpec:         getEnv("QUOTA_RESET_CRON", "0 0 1 * *"),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.TokenTTLMinutes <= 0 {
		log.Fatal("TOKEN_TTL_MINUTES must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.NotifierWorkers <= 0 {
		log.Fatal("NOTIFIER_WORKERS must be greater than 0")
	}
	if cfg.NotifierQueueSize <= 0 {
		log.Fatal("NOTIFIER_QUEUE_SIZE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
