package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env  string
	Port string

	DatabaseURL string
	RedisURL    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	EmailProvider     string // "console" or "brevo"
	BrevoAPIKey       string
	MailFrom          string
	InviteEmailStrict bool // fail invitation creation when the email dispatch fails

	FrontendURL string
	LogLevel    string
	LogFormat   string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	accessMinutes := viper.GetInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES")
	if accessMinutes <= 0 {
		accessMinutes = 15
	}
	refreshDays := viper.GetInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS")
	if refreshDays <= 0 {
		refreshDays = 7
	}

	provider := viper.GetString("EMAIL_PROVIDER")
	if provider == "" {
		provider = "console"
	}

	frontendURL := strings.TrimSpace(viper.GetString("FRONTEND_URL"))
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	return &Config{
		Env:                env,
		Port:               port,
		DatabaseURL:        viper.GetString("DATABASE_URL"),
		RedisURL:           viper.GetString("REDIS_URL"),
		JWTSecret:          viper.GetString("JWT_SECRET_KEY"),
		AccessTokenTTL:     time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL:    time.Duration(refreshDays) * 24 * time.Hour,
		GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  viper.GetString("GOOGLE_REDIRECT_URI"),
		EmailProvider:      provider,
		BrevoAPIKey:        viper.GetString("BREVO_API_KEY"),
		MailFrom:           viper.GetString("MAIL_FROM"),
		InviteEmailStrict:  strings.EqualFold(viper.GetString("INVITE_EMAIL_STRICT"), "true"),
		FrontendURL:        frontendURL,
		LogLevel:           viper.GetString("LOG_LEVEL"),
		LogFormat:          viper.GetString("LOG_FORMAT"),
	}, nil
}

// IsProduction reports whether the app runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
