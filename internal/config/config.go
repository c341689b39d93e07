package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
)

// Global configuration structure.
//
// The OpenRouter key travels here, never through an ambient env lookup at
// package load. Startup resolves it once (flag > env > file) and anything
// that needs it takes the struct.
type Global struct {
	APIKey          string `mapstructure:"api_key" yaml:"api_key"`
	DefaultModel    string `mapstructure:"default_model" yaml:"default_model"`
	DefaultProvider string `mapstructure:"default_provider" yaml:"default_provider"`

	// Dataset
	DatasetPath string `mapstructure:"dataset_path" yaml:"dataset_path"`

	// Generation
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// HTTP
	HTTPTimeoutSec int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`

	// Local runtimes (Ollama)
	OllamaHost string `mapstructure:"ollama_host" yaml:"ollama_host"`

	// Logging
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Saved chat transcripts
	SessionsDir string `mapstructure:"sessions_dir" yaml:"sessions_dir"`
}

// Dir returns the per-user config directory, ~/.databuoy.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".databuoy"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.databuoy/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATABUOY")
	v.AutomaticEnv()

	// Defaults. api_key defaults empty so the key is known to viper and
	// DATABUOY_API_KEY is picked up by Unmarshal.
	v.SetDefault("api_key", "")
	v.SetDefault("default_model", ai.DefaultModel)
	v.SetDefault("default_provider", "openrouter")
	v.SetDefault("dataset_path", "titanic.xlsx")
	v.SetDefault("max_tokens", 2000)
	v.SetDefault("temperature", 0.1)
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("ollama_host", "http://127.0.0.1:11434")
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SessionsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.SessionsDir = filepath.Join(dir, "sessions")
	}
	if c.LogFile == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.LogFile = filepath.Join(dir, "databuoy.log")
	}
	return &c, nil
}
