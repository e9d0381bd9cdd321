package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Classroom       ClassroomConfig      `mapstructure:"classroom"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	Quotes  QuotesConfig  `mapstructure:"quotes"`
	Sectors SectorsConfig `mapstructure:"sectors"`
}

type QuotesConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	Token   string `mapstructure:"token"`
}

type SectorsConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

type AuthConfig struct {
	// JWTSecret is used directly when set; otherwise the secret is fetched
	// from AWS Secrets Manager using SecretID.
	JWTSecret string `mapstructure:"jwtSecret"`
	SecretID  string `mapstructure:"secretId"`
	AWSRegion string `mapstructure:"awsRegion"`
}

type ClassroomConfig struct {
	StartingCash        float64 `mapstructure:"startingCash"`
	QuoteRefreshCron    string  `mapstructure:"quoteRefreshCron"`
	QuoteCacheTTLMinute int     `mapstructure:"quoteCacheTtlMinutes"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Classroom.StartingCash == 0 {
		cfg.Classroom.StartingCash = 100000
	}
	if cfg.Classroom.QuoteRefreshCron == "" {
		cfg.Classroom.QuoteRefreshCron = "@every 5m"
	}
	if cfg.Classroom.QuoteCacheTTLMinute == 0 {
		cfg.Classroom.QuoteCacheTTLMinute = 15
	}
	return &cfg, nil
}
