package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Credentials CredentialsConfig `toml:"credentials"`
	Resolver    ResolverConfig    `toml:"resolver"`
	Lyrics      LyricsConfig      `toml:"lyrics"`
	AI          AIConfig          `toml:"ai"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig contains Spotify API credentials for the client-credentials flow.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// YouTubeConfig contains the YouTube Data API key pool.
//
// Keys are tried in order; when one is quota-rejected the next takes over.
type YouTubeConfig struct {
	APIKeys []string `toml:"api_keys"`
	BaseURL string   `toml:"base_url"`
}

// ResolverConfig contains tuning knobs for the video-match resolution engine.
type ResolverConfig struct {
	CacheCapacity  int     `toml:"cache_capacity"`
	SearchTimeout  int     `toml:"search_timeout_seconds"`
	MaxResults     int     `toml:"max_results"`
	RequestsPerSec float64 `toml:"requests_per_second"`
	PrefetchLimit  int     `toml:"prefetch_limit"`
}

// LyricsConfig contains lyrics provider settings.
type LyricsConfig struct {
	BaseURL string `toml:"base_url"`
}

// AIConfig contains text-generation provider settings.
type AIConfig struct {
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	DailyLimit     int    `toml:"daily_limit"`
}

// envOverrides holds secrets that may be supplied through the environment
// instead of the config file. Environment values win when set.
type envOverrides struct {
	SpotifyClientID     string   `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string   `env:"SPOTIFY_CLIENT_SECRET"`
	YouTubeAPIKeys      []string `env:"YOUTUBE_API_KEYS" envSeparator:","`
	AIAPIKey            string   `env:"AI_API_KEY"`
	DatabasePath        string   `env:"BEATLY_DB_PATH"`
	Port                int      `env:"PORT"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then applies environment-variable overrides for secrets.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded
// example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if err := config.applyEnv(); err != nil {
		panic(fmt.Sprintf("failed to read environment overrides: %v", err))
	}
	return &config
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if overrides.SpotifyClientID != "" {
		c.Credentials.Spotify.ClientID = overrides.SpotifyClientID
	}
	if overrides.SpotifyClientSecret != "" {
		c.Credentials.Spotify.ClientSecret = overrides.SpotifyClientSecret
	}
	if len(overrides.YouTubeAPIKeys) > 0 {
		c.Credentials.YouTube.APIKeys = overrides.YouTubeAPIKeys
	}
	if overrides.AIAPIKey != "" {
		c.AI.APIKey = overrides.AIAPIKey
	}
	if overrides.DatabasePath != "" {
		c.Database.Path = overrides.DatabasePath
	}
	if overrides.Port != 0 {
		c.Server.Port = overrides.Port
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
