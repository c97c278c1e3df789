package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime knob. All values can be overridden through
// environment variables with the same name.
type Config struct {
	ListenAddr  string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	// SaleTxTimeout bounds how long a placement may wait on conflicting
	// transactions before aborting with a retryable error.
	SaleTxTimeout time.Duration

	AlertFrom        string
	AlertTo          string
	SMTPServer       string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	SMTPAuthDisabled bool
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "pos-redis:6379")
	v.SetDefault("SALE_TX_TIMEOUT", "5s")
	v.AutomaticEnv()

	cfg := Config{
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		SaleTxTimeout:    v.GetDuration("SALE_TX_TIMEOUT"),
		AlertFrom:        v.GetString("ALERT_FROM"),
		AlertTo:          v.GetString("ALERT_TO"),
		SMTPServer:       v.GetString("SMTP_SERVER"),
		SMTPPort:         v.GetString("SMTP_PORT"),
		SMTPUser:         v.GetString("SMTP_USER"),
		SMTPPassword:     v.GetString("SMTP_PASS"),
		SMTPAuthDisabled: v.GetBool("SMTP_AUTH_DISABLED"),
	}
	return cfg, nil
}
