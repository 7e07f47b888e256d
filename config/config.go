package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int      `yaml:"port"`
		AllowOrigins []string `yaml:"allowOrigins"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
	} `yaml:"redis"`

	Auth struct {
		JwtSecret string `yaml:"jwtSecret"`
	} `yaml:"auth"`

	Practice struct {
		DailyLimit  int     `yaml:"dailyLimit"`
		MaxTokens   int     `yaml:"maxTokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"practice"`
}

// LoadConfig reads the configuration file and applies environment overrides
// for secrets so deployments never have to commit keys into the YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.ApiKey = key
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JwtSecret = secret
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Practice.DailyLimit == 0 {
		cfg.Practice.DailyLimit = 100
	}
	if cfg.Practice.MaxTokens == 0 {
		cfg.Practice.MaxTokens = 1024
	}
	if cfg.Practice.Temperature == 0 {
		cfg.Practice.Temperature = 0.7
	}

	return &cfg, nil
}
