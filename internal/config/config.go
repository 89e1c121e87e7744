package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	DatabaseDriver                string        `mapstructure:"DATABASE_DRIVER"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	DatabaseURL                   string        `mapstructure:"DATABASE_URL"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL                time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL               time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`
	DefaultPageSize               int           `mapstructure:"DEFAULT_PAGE_SIZE"`
	MaxPageSize                   int           `mapstructure:"MAX_PAGE_SIZE"`
	EnableCORS                    bool          `mapstructure:"ENABLE_CORS"`
	CORSAllowedOrigins            []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	AdminEmail                    string        `mapstructure:"ADMIN_EMAIL"`
	AdminPassword                 string        `mapstructure:"ADMIN_PASSWORD"`
}

func LoadConfig() *Config {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "tourism.db")
	viper.SetDefault("ACCESS_TOKEN_TTL", "15m")
	viper.SetDefault("REFRESH_TOKEN_TTL", "168h")
	viper.SetDefault("DEFAULT_PAGE_SIZE", 10)
	viper.SetDefault("MAX_PAGE_SIZE", 100)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("ADMIN_EMAIL")
	viper.BindEnv("ADMIN_PASSWORD")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if config.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return &config
}
