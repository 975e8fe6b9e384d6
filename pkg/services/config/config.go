package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Extraction struct {
	// LocalLimitBytes is the size above which files are delegated to the
	// remote parsing endpoint; HardLimitBytes is the absolute cap.
	LocalLimitBytes int64  `mapstructure:"local_limit_bytes"`
	HardLimitBytes  int64  `mapstructure:"hard_limit_bytes"`
	Endpoint        string `mapstructure:"endpoint"`
}

type Gemini struct {
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
	// The API key is a credential, not configuration: it comes from the
	// GEMINI_API_KEY environment variable only.
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	Server     Server     `mapstructure:"server"`
	Extraction Extraction `mapstructure:"extraction"`
	Gemini     Gemini     `mapstructure:"gemini"`
	Database   Database   `mapstructure:"database"`
}

// Load reads the YAML config at path, falling back to defaults for any
// missing section. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("extraction.local_limit_bytes", 5*1024*1024)
	v.SetDefault("extraction.hard_limit_bytes", 25*1024*1024)
	v.SetDefault("extraction.endpoint", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout", 30*time.Second)
	v.SetDefault("database.path", "doom-diag.db")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
