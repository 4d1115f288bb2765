package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Mail   MailConfig
	App    AppConfig
}

type ServerConfig struct {
	Host string
	Port string `validate:"required"`
}

type MailConfig struct {
	Enabled  bool
	Host     string `validate:"required_if=Enabled true"`
	Port     string `validate:"required_if=Enabled true"`
	Username string `validate:"required_if=Enabled true"`
	Password string `validate:"required_if=Enabled true"`
	To       string `validate:"required_if=Enabled true"`
}

type AppConfig struct {
	UploadDir     string `validate:"required"`
	MaxUploadSize int64  `validate:"gt=0"`
	FrontendURL   string `validate:"required"`
	PublicAPIURL  string
	OwnerName     string `validate:"required"`
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "")
	viper.SetDefault("SERVER_PORT", "9000")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("PUBLIC_API_URL", "http://localhost:9000")
	viper.SetDefault("APP_UPLOAD_DIR", "./uploads")
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 10*1024*1024) // 10MB
	viper.SetDefault("APP_OWNER_NAME", "Sanjay")
	viper.SetDefault("MAIL_ENABLED", false)
	viper.SetDefault("MAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("MAIL_PORT", "587")
	viper.SetDefault("MAIL_USER", "")
	viper.SetDefault("MAIL_PASS", "")
	viper.SetDefault("MAIL_TO", "")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		Mail: MailConfig{
			Enabled:  viper.GetBool("MAIL_ENABLED"),
			Host:     viper.GetString("MAIL_HOST"),
			Port:     viper.GetString("MAIL_PORT"),
			Username: viper.GetString("MAIL_USER"),
			Password: viper.GetString("MAIL_PASS"),
			To:       viper.GetString("MAIL_TO"),
		},
		App: AppConfig{
			UploadDir:     viper.GetString("APP_UPLOAD_DIR"),
			MaxUploadSize: viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
			FrontendURL:   viper.GetString("FRONTEND_URL"),
			PublicAPIURL:  viper.GetString("PUBLIC_API_URL"),
			OwnerName:     viper.GetString("APP_OWNER_NAME"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := createDirs(cfg); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

func createDirs(cfg *Config) error {
	if err := os.MkdirAll(cfg.App.UploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cfg.App.UploadDir, err)
	}
	return nil
}
