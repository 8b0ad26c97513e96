package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Billplz  Billplz
	Auth     Auth
	Quiz     Quiz

	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Billplz holds credentials for the bill-payment gateway.
type Billplz struct {
	BaseURL       string
	APIKey        string
	CollectionID  string
	XSignatureKey string
	RedirectURL   string
	CallbackURL   string
}

type Auth struct {
	JWTSecret string
}

type Quiz struct {
	DefaultTimeLimitMin int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("BILLPLZ_BASE_URL", "https://www.billplz.com/api")
	viper.SetDefault("QUIZ_DEFAULT_TIME_LIMIT_MIN", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Billplz.BaseURL = viper.GetString("BILLPLZ_BASE_URL")
	config.Billplz.APIKey = viper.GetString("BILLPLZ_API_KEY")
	config.Billplz.CollectionID = viper.GetString("BILLPLZ_COLLECTION_ID")
	config.Billplz.XSignatureKey = viper.GetString("BILLPLZ_X_SIGNATURE_KEY")
	config.Billplz.RedirectURL = viper.GetString("BILLPLZ_REDIRECT_URL")
	config.Billplz.CallbackURL = viper.GetString("BILLPLZ_CALLBACK_URL")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Quiz.DefaultTimeLimitMin = viper.GetInt("QUIZ_DEFAULT_TIME_LIMIT_MIN")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
