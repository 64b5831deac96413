package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "pixelgate.yaml"

// Config holds the settings of the gateway and the submit client.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig configures the gateway HTTP server.
type ServerConfig struct {
	Port              string   `yaml:"port"`
	MaxUploadBytes    int64    `yaml:"max_upload_bytes"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// EngineConfig points at the processing engine.
type EngineConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ClientConfig configures `pixelgate submit`.
type ClientConfig struct {
	Server string `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:              "5000",
			MaxUploadBytes:    10 * 1024 * 1024,
			AllowedExtensions: []string{"jpg", "jpeg", "png"},
			RateBurst:         10,
		},
		Engine: EngineConfig{
			URL:     "http://engine:5000/process",
			Timeout: 30 * time.Second,
		},
		Client: ClientConfig{
			Server: "http://localhost:5000",
		},
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path means DefaultPath, which may be missing.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PIXELGATE_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("PIXELGATE_SERVER"); v != "" {
		c.Client.Server = v
	}
	if v := os.Getenv("ENGINE_URL"); v != "" {
		c.Engine.URL = v
	}
	if v := os.Getenv("ENGINE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ENGINE_TIMEOUT %q: %w", v, err)
		}
		c.Engine.Timeout = d
	}
	if v := os.Getenv("PIXELGATE_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PIXELGATE_MAX_UPLOAD_BYTES %q: %w", v, err)
		}
		c.Server.MaxUploadBytes = n
	}
	return nil
}

// Validate reports settings the gateway cannot run with.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if len(c.Server.AllowedExtensions) == 0 {
		return fmt.Errorf("server.allowed_extensions must not be empty")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Engine.URL == "" {
		return fmt.Errorf("engine.url is required")
	}
	if c.Engine.Timeout <= 0 {
		return fmt.Errorf("engine.timeout must be positive")
	}
	return nil
}

// Allowed reports whether filename carries an allowed extension.
func (s ServerConfig) Allowed(filename string) bool {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return false
	}
	ext := strings.ToLower(filename[dot+1:])
	for _, allowed := range s.AllowedExtensions {
		if ext == strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}

// MaxUploadMB is the upload limit in whole megabytes, for messages.
func (s ServerConfig) MaxUploadMB() int64 {
	return s.MaxUploadBytes / (1024 * 1024)
}
