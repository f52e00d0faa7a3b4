package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	DatabaseURL string

	JWT      JWTConfig
	SendGrid SendGridConfig
	Twilio   TwilioConfig
	Salon    SalonConfig
	CORS     CORSConfig
	Log      LogConfig
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// SalonConfig carries the salon identity used in outgoing mail and the
// timezone all customer-facing times are rendered in.
type SalonConfig struct {
	Name         string
	ContactEmail string
	Timezone     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !strings.Contains(err.Error(), "no such file") {
			return nil, err
		}
	}

	cfg := &Config{
		Env:         v.GetString("ENV"),
		Port:        v.GetInt("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetDuration("JWT_EXPIRATION"),
		},
		SendGrid: SendGridConfig{
			APIKey:    v.GetString("SENDGRID_API_KEY"),
			FromEmail: v.GetString("SENDGRID_FROM_EMAIL"),
			FromName:  v.GetString("SENDGRID_FROM_NAME"),
		},
		Twilio: TwilioConfig{
			AccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
			FromNumber: v.GetString("TWILIO_FROM_NUMBER"),
		},
		Salon: SalonConfig{
			Name:         v.GetString("SALON_NAME"),
			ContactEmail: v.GetString("SALON_CONTACT_EMAIL"),
			Timezone:     v.GetString("SALON_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ","),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	if cfg.Env == EnvProduction && cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("JWT_EXPIRATION", time.Hour)
	v.SetDefault("SENDGRID_FROM_NAME", "Kommotirio")
	v.SetDefault("SALON_NAME", "Kommotirio")
	v.SetDefault("SALON_TIMEZONE", "Europe/Athens")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}
