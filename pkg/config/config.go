package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Session store backends
const (
	StoreFile      = "file"
	StoreEncrypted = "encrypted"
	StoreKeyring   = "keyring"
	StoreMemory    = "memory"
)

// Config holds all configuration options for the Instagram client
type Config struct {
	// Instagram credentials and endpoint roots
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Where the authenticated session is persisted
	Session SessionConfig `yaml:"session" json:"session"`

	// Delay policy and budget for paginated listings
	Paging PagingConfig `yaml:"paging" json:"paging"`

	HTTP HTTPConfig `yaml:"http" json:"http"`

	// id -> username lookup cache
	Cache CacheConfig `yaml:"cache" json:"cache"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds Instagram-specific configuration
type InstagramConfig struct {
	Username   string `yaml:"username" json:"username"`
	Password   string `yaml:"password" json:"-"`
	UserAgent  string `yaml:"user_agent" json:"user_agent"`
	BaseURL    string `yaml:"base_url" json:"base_url"`
	APIBaseURL string `yaml:"api_base_url" json:"api_base_url"`
}

// SessionConfig selects the credential store
type SessionConfig struct {
	Store     string `yaml:"store" json:"store"`
	Directory string `yaml:"directory" json:"directory"`
	Fresh     bool   `yaml:"fresh" json:"fresh"`
}

// PagingConfig holds the inter-page delay policy
type PagingConfig struct {
	Delayed           bool          `yaml:"delayed" json:"delayed"`
	DelayMin          time.Duration `yaml:"delay_min" json:"delay_min"`
	DelayMax          time.Duration `yaml:"delay_max" json:"delay_max"`
	TimeLimit         time.Duration `yaml:"time_limit" json:"time_limit"`
	MediaRequestCount int           `yaml:"media_request_count" json:"media_request_count"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// CacheConfig holds the username cache settings
type CacheConfig struct {
	Size int           `yaml:"size" json:"size"`
	TTL  time.Duration `yaml:"ttl" json:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			BaseURL:    "https://www.instagram.com",
			APIBaseURL: "https://i.instagram.com",
		},
		Session: SessionConfig{
			Store:     StoreFile,
			Directory: defaultSessionDir(),
		},
		Paging: PagingConfig{
			Delayed:           true,
			DelayMin:          1 * time.Second,
			DelayMax:          3 * time.Second,
			TimeLimit:         30 * time.Minute,
			MediaRequestCount: 12,
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Size: 512,
			TTL:  time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".igclient"
	}
	return filepath.Join(home, ".config", "igclient", "sessions")
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if v := os.Getenv("IGCLIENT_USERNAME"); v != "" {
		c.Instagram.Username = v
	}
	if v := os.Getenv("IGCLIENT_PASSWORD"); v != "" {
		c.Instagram.Password = v
	}
	if v := os.Getenv("IGCLIENT_USER_AGENT"); v != "" {
		c.Instagram.UserAgent = v
	}
	if v := os.Getenv("IGCLIENT_BASE_URL"); v != "" {
		c.Instagram.BaseURL = v
	}
	if v := os.Getenv("IGCLIENT_API_BASE_URL"); v != "" {
		c.Instagram.APIBaseURL = v
	}

	if v := os.Getenv("IGCLIENT_SESSION_STORE"); v != "" {
		c.Session.Store = strings.ToLower(v)
	}
	if v := os.Getenv("IGCLIENT_SESSION_DIR"); v != "" {
		c.Session.Directory = v
	}
	if v := os.Getenv("IGCLIENT_FRESH_LOGIN"); v != "" {
		c.Session.Fresh = strings.ToLower(v) == "true"
	}

	if v := os.Getenv("IGCLIENT_PAGING_DELAYED"); v != "" {
		c.Paging.Delayed = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("IGCLIENT_PAGING_DELAY_MIN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLIENT_PAGING_DELAY_MIN: %w", err))
		} else {
			c.Paging.DelayMin = d
		}
	}
	if v := os.Getenv("IGCLIENT_PAGING_DELAY_MAX"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLIENT_PAGING_DELAY_MAX: %w", err))
		} else {
			c.Paging.DelayMax = d
		}
	}
	if v := os.Getenv("IGCLIENT_PAGING_TIME_LIMIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLIENT_PAGING_TIME_LIMIT: %w", err))
		} else {
			c.Paging.TimeLimit = d
		}
	}
	if v := os.Getenv("IGCLIENT_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLIENT_HTTP_TIMEOUT: %w", err))
		} else {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("IGCLIENT_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGCLIENT_CACHE_SIZE: %w", err))
		} else {
			c.Cache.Size = n
		}
	}

	if v := os.Getenv("IGCLIENT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("IGCLIENT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".igclient.yaml",
		".igclient.yml",
		filepath.Join(home, ".config", "igclient", "config.yaml"),
		filepath.Join(home, ".config", "igclient", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. Credentials are optional:
// anonymous clients are allowed and Login reports their absence.
func (c *Config) Validate() error {
	var errs []error

	if c.Instagram.BaseURL == "" {
		errs = append(errs, errors.New("instagram base URL is required"))
	}
	if c.Instagram.APIBaseURL == "" {
		errs = append(errs, errors.New("instagram API base URL is required"))
	}
	if c.Instagram.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}

	switch c.Session.Store {
	case StoreFile, StoreEncrypted:
		if c.Session.Directory == "" {
			errs = append(errs, errors.New("session directory is required for file based stores"))
		}
	case StoreKeyring, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid session store %q", c.Session.Store))
	}

	if c.Paging.DelayMin < 0 {
		errs = append(errs, errors.New("paging delay min cannot be negative"))
	}
	if c.Paging.DelayMax < c.Paging.DelayMin {
		errs = append(errs, errors.New("paging delay max must not be below delay min"))
	}
	if c.Paging.TimeLimit <= 0 {
		errs = append(errs, errors.New("paging time limit must be positive"))
	}
	if c.Paging.MediaRequestCount <= 0 || c.Paging.MediaRequestCount > 50 {
		errs = append(errs, errors.New("media request count must be between 1 and 50"))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, errors.New("cache size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file. The password is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.Instagram.Password = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["username"].(string); ok && v != "" {
		c.Instagram.Username = v
	}
	if v, ok := flags["password"].(string); ok && v != "" {
		c.Instagram.Password = v
	}
	if v, ok := flags["session-store"].(string); ok && v != "" {
		c.Session.Store = v
	}
	if v, ok := flags["session-dir"].(string); ok && v != "" {
		c.Session.Directory = v
	}
	if v, ok := flags["fresh"].(bool); ok && v {
		c.Session.Fresh = true
	}
	if v, ok := flags["no-delay"].(bool); ok && v {
		c.Paging.Delayed = false
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igclient.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
