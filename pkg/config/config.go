package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Source struct {
		BaseURL        string        `yaml:"base_url"`
		Timeout        time.Duration `yaml:"timeout"`
		IndicatorTTL   time.Duration `yaml:"indicator_ttl"`
		HighlightCodes []string      `yaml:"highlight_codes"`
		GlobalCodes    []string      `yaml:"global_codes"`
	} `yaml:"source"`
	News struct {
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		Country  string        `yaml:"country"`
		Category string        `yaml:"category"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	Store struct {
		Backend string `yaml:"backend"` // file, memory, redis
		Dir     string `yaml:"dir"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"store"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SOURCE_BASE_URL"); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("STORE_DIR"); v != "" {
		c.Store.Dir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Store.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Store.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 15 * time.Second
	}
	if c.Source.IndicatorTTL == 0 {
		c.Source.IndicatorTTL = 10 * time.Minute
	}
	if len(c.Source.HighlightCodes) == 0 {
		c.Source.HighlightCodes = []string{"USD", "EUR", "CAD"}
	}
	if len(c.Source.GlobalCodes) == 0 {
		c.Source.GlobalCodes = []string{"USD", "EUR", "JPY", "GBP", "CAD"}
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 15 * time.Second
	}
	if c.News.Country == "" {
		c.News.Country = "br"
	}
	if c.News.Category == "" {
		c.News.Category = "business"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "data"
	}
	if c.Store.Redis.Host == "" {
		c.Store.Redis.Host = "localhost"
	}
	if c.Store.Redis.Port == 0 {
		c.Store.Redis.Port = 6379
	}
	if c.Store.Redis.Prefix == "" {
		c.Store.Redis.Prefix = "quotevault"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	switch c.Store.Backend {
	case "file", "memory", "redis":
	default:
		return fmt.Errorf("store.backend must be 'file', 'memory' or 'redis', got '%s'", c.Store.Backend)
	}
	return nil
}
