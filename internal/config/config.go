package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	DryRun     bool   `yaml:"dry_run"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTKey string `yaml:"jwt_key"`
	} `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Frontend struct {
		URL            string   `yaml:"url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"frontend"`
	Twilio TwilioConfig `yaml:"twilio"`
	Google GoogleConfig `yaml:"google"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Frontend.URL == "" {
		cfg.Frontend.URL = "http://localhost:5173"
	}
	if len(cfg.Frontend.AllowedOrigins) == 0 {
		cfg.Frontend.AllowedOrigins = []string{cfg.Frontend.URL}
	}
	return &cfg
}
