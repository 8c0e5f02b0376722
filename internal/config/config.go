package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	JWT     JWTConfig
	SMS     SMSConfig
	S3      S3Config
	OTP     OTPConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds session token configuration. Secret has no default; startup
// fails when it is unset.
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// SMSConfig holds SMS gateway configuration
type SMSConfig struct {
	TwoFactorBaseURL string
	TwoFactorAPIKey  string
	TimeoutSeconds   int
	MockGateway      bool
}

// S3Config holds object storage configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseEndpoint    string
}

// OTPConfig holds one-time-code configuration
type OTPConfig struct {
	ExpiryMinutes int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; environment variables can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	bindEnvOverrides(&config)

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "5000")
	viper.SetDefault("Server.AllowedHosts", []string{"http://localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "multicom")
	viper.SetDefault("JWT.ExpiresIn", 60*60) // 1 hour
	viper.SetDefault("SMS.TwoFactorBaseURL", "https://2factor.in/API/V1")
	viper.SetDefault("SMS.TimeoutSeconds", 10)
	viper.SetDefault("SMS.MockGateway", true)
	viper.SetDefault("OTP.ExpiryMinutes", 5)
}

// bindEnvOverrides maps the conventional flat environment variable names onto
// the nested struct, for deployments that configure via .env only.
func bindEnvOverrides(cfg *Config) {
	if v := viper.GetString("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := viper.GetString("MONGO_URI"); v != "" {
		cfg.MongoDB.URI = v
	}
	if v := viper.GetString("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := viper.GetString("TWO_FACTOR_API_KEY"); v != "" {
		cfg.SMS.TwoFactorAPIKey = v
	}
	if v := viper.GetString("AWS_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := viper.GetString("AWS_BUCKET_NAME"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := viper.GetString("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.S3.AccessKeyID = v
	}
	if v := viper.GetString("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.S3.SecretAccessKey = v
	}
}
