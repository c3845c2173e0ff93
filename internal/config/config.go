package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Load builds it once; nothing
// mutates it afterwards.
type Config struct {
	Finnhub struct {
		Token   string `yaml:"token"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"finnhub"`
	Mail struct {
		Sender    string `yaml:"sender"`
		Password  string `yaml:"password"`
		Recipient string `yaml:"recipient"`
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
	} `yaml:"mail"`
	TLS struct {
		AllowInsecure bool   `yaml:"allow_insecure"`
		CABundle      string `yaml:"ca_bundle"`
		CertFile      string `yaml:"cert_file"`
	} `yaml:"tls"`
	Schedule struct {
		Hour            int    `yaml:"hour"`
		Minute          int    `yaml:"minute"`
		Timezone        string `yaml:"timezone"`
		PollSeconds     int    `yaml:"poll_seconds"`
		CooldownSeconds int    `yaml:"cooldown_seconds"`
	} `yaml:"schedule"`
	Market struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"market"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`

	// Offer amount cutoff in USD. Fixed at load time, not exposed as a key.
	Threshold float64 `yaml:"-"`

	// Locations resolved from the timezone names during Load.
	ScheduleLoc *time.Location `yaml:"-"`
	MarketLoc   *time.Location `yaml:"-"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Finnhub.Token = "finnhub_token"
	cfg.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	cfg.Mail.Sender = "from_email@gmail.com"
	cfg.Mail.Password = "gmail_app_pswd"
	cfg.Mail.Recipient = "to_email@gmail.com"
	cfg.Mail.Host = "smtp.gmail.com"
	cfg.Mail.Port = 587
	cfg.Schedule.Hour = 9
	cfg.Schedule.Minute = 0
	cfg.Schedule.Timezone = "Asia/Dubai"
	cfg.Schedule.PollSeconds = 20
	cfg.Schedule.CooldownSeconds = 70
	cfg.Market.Timezone = "America/New_York"
	cfg.Log.Level = "info"
	cfg.Threshold = 200_000_000
	return cfg
}

// Load reads an optional .env file and a YAML config file over the defaults,
// then applies environment variable overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FINNHUB_TOKEN"); v != "" {
		cfg.Finnhub.Token = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Finnhub.BaseURL = v
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.Mail.Sender = v
	}
	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("RECEIVER_EMAIL"); v != "" {
		cfg.Mail.Recipient = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = p
		}
	}
	if v := os.Getenv("ALLOW_INSECURE_SSL"); v != "" {
		cfg.TLS.AllowInsecure = v == "1"
	}
	if v := os.Getenv("CA_BUNDLE"); v != "" {
		cfg.TLS.CABundle = v
	}
	if v := os.Getenv("SSL_CERT_FILE"); v != "" {
		cfg.TLS.CertFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	if cfg.ScheduleLoc, err = time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return nil, fmt.Errorf("load schedule timezone: %w", err)
	}
	if cfg.MarketLoc, err = time.LoadLocation(cfg.Market.Timezone); err != nil {
		return nil, fmt.Errorf("load market timezone: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required fields are set and in range.
func (c *Config) Validate() error {
	if c.Finnhub.Token == "" {
		return fmt.Errorf("finnhub.token is required")
	}
	if c.Mail.Sender == "" {
		return fmt.Errorf("mail.sender is required")
	}
	if c.Mail.Recipient == "" {
		return fmt.Errorf("mail.recipient is required")
	}
	if c.Mail.Port < 1 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port must be in 1-65535, got %d", c.Mail.Port)
	}
	if c.Schedule.Hour < 0 || c.Schedule.Hour > 23 {
		return fmt.Errorf("schedule.hour must be in 0-23, got %d", c.Schedule.Hour)
	}
	if c.Schedule.Minute < 0 || c.Schedule.Minute > 59 {
		return fmt.Errorf("schedule.minute must be in 0-59, got %d", c.Schedule.Minute)
	}
	if c.Schedule.PollSeconds < 1 {
		return fmt.Errorf("schedule.poll_seconds must be positive, got %d", c.Schedule.PollSeconds)
	}
	if c.Schedule.CooldownSeconds < 60 {
		return fmt.Errorf("schedule.cooldown_seconds must be at least 60, got %d", c.Schedule.CooldownSeconds)
	}
	return nil
}
