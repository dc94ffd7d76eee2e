package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	OpenAI OpenAIConfig `yaml:"openai"`
	Audio  AudioConfig  `yaml:"audio"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`

	// RateLimit is requests per minute per client IP. An explicit 0 turns
	// limiting off; leaving it out means 60.
	RateLimit      *int     `yaml:"rate_limit" validate:"required,gte=0"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,url"`
}

type AudioConfig struct {
	Source     string `yaml:"source" validate:"oneof=microphone file"`
	FilePath   string `yaml:"file_path" validate:"required_if=Source file"`
	SampleRate int    `yaml:"sample_rate" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	File   string `yaml:"file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RateLimit == nil {
		limit := 60
		c.Server.RateLimit = &limit
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.Audio.Source == "" {
		c.Audio.Source = "microphone"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
