package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully resolved application configuration, loaded from a
// config file and EIGENSLUR_-prefixed environment overrides.
type Config struct {
	AppName       string            `mapstructure:"app_name"`
	AppVersion    string            `mapstructure:"app_version"`
	DefaultLocale string            `mapstructure:"default_locale"`
	Server        ServerConfig      `mapstructure:"server"`
	Database      DatabaseConfig    `mapstructure:"database"`
	Fusion        FusionConfig      `mapstructure:"fusion"`
	Persistence   PersistenceConfig `mapstructure:"persistence"`
	Labeler       LabelerConfig     `mapstructure:"labeler"`
	Auth          AuthConfig        `mapstructure:"auth"`
	EmbeddingDim  int               `mapstructure:"embedding_dim"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig configures the Postgres connection.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

// FusionConfig configures the default band thresholds before any historical
// tuning is applied.
type FusionConfig struct {
	ReviewThreshold float64 `mapstructure:"review_threshold"`
	BlockThreshold  float64 `mapstructure:"block_threshold"`
}

// PersistenceConfig toggles whether scored terms and feedback are written
// to Postgres at all.
type PersistenceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LabelerConfig selects and configures the per-context labeler backend.
type LabelerConfig struct {
	// Mode is "heuristic" or "openai".
	Mode           string  `mapstructure:"mode"`
	OpenAIAPIKey   string  `mapstructure:"openai_api_key"`
	OpenAIModel    string  `mapstructure:"openai_model"`
	OpenAITimeoutS float64 `mapstructure:"openai_timeout_seconds"`
}

// AuthConfig configures the admin bearer token used to gate feedback
// submission and history lookups.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// Load resolves configuration from a JSON file (searched in ".", "./config",
// and "$HOME/.eigenslur") layered under defaults, then EIGENSLUR_-prefixed
// environment variable overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".eigenslur"))
	}

	viper.SetEnvPrefix("EIGENSLUR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app_name", "EigenSlur Backend")
	viper.SetDefault("app_version", "0.1.0")
	viper.SetDefault("default_locale", "en-US")
	viper.SetDefault("embedding_dim", 256)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "eigenslur")
	viper.SetDefault("database.database", "eigenslur")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("fusion.review_threshold", 0.35)
	viper.SetDefault("fusion.block_threshold", 0.65)

	viper.SetDefault("persistence.enabled", true)

	viper.SetDefault("labeler.mode", "openai")
	viper.SetDefault("labeler.openai_model", "gpt-4.1-mini")
	viper.SetDefault("labeler.openai_timeout_seconds", 20.0)

	viper.SetDefault("auth.jwt_secret", "")
}
