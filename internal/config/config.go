package config

import (
	"fmt"
	"os"
)

// Config holds the whole app configuration.
type Config struct {
	Port string // server port

	JWTSecret     string // JWT signing secret
	SessionSecret string // cookie session signing secret

	UploadDir string // where product images and avatars land

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string // From: address on OTP mail

	GoEnv string // dev/prod
}

// Load reads the environment. Database settings are read separately by
// db.Connect.
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		SMTPHost: getenv("SMTP_HOST", "localhost"),
		SMTPPort: getenv("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getenv("MAIL_FROM", "no-reply@balajidairy.local"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	// required
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
