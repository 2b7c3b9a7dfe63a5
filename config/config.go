package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
)

// Storage backends accepted in database.driver.
const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// Config struct to hold the configuration settings
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Lookup        LookupConfig        `yaml:"lookup"`
	Leaderboard   LeaderboardConfig   `yaml:"leaderboard"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DatabaseConfig selects and addresses the result store.
type DatabaseConfig struct {
	Driver               string `yaml:"driver"`
	DSN                  string `yaml:"dsn"`
	FirestoreProject     string `yaml:"firestore_project"`
	FirestoreCredentials string `yaml:"firestore_credentials"`
	Collection           string `yaml:"collection"`
}

// NATSConfig holds NATS configuration. An empty URL disables the message router.
type NATSConfig struct {
	URL          string `yaml:"url"`
	GroupName    string `yaml:"group_name"`
	InboundTopic string `yaml:"inbound_topic"`
	ReplyTopic   string `yaml:"reply_topic"`
	QueueGroup   string `yaml:"queue_group"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	Address           string  `yaml:"address"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LookupConfig configures the puzzle date lookup client and resolver.
type LookupConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	MaxSteps          int           `yaml:"max_steps"`
}

// LeaderboardConfig names the ranking and points policies.
type LeaderboardConfig struct {
	Ranking string `yaml:"ranking"`
	Points  string `yaml:"points"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // json|text
	Environment string `yaml:"environment"`
}

// RankingPolicy returns the validated ranking policy.
func (c LeaderboardConfig) RankingPolicy() (wordledomain.RankingPolicy, error) {
	return wordledomain.ParseRankingPolicy(c.Ranking)
}

// PointsPolicy returns the validated points policy.
func (c LeaderboardConfig) PointsPolicy() (wordledomain.PointsPolicy, error) {
	return wordledomain.ParsePointsPolicy(c.Points)
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, load from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("FIRESTORE_PROJECT"); v != "" {
		cfg.Database.FirestoreProject = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.Database.FirestoreCredentials = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("WORDLE_GROUP_NAME"); v != "" {
		cfg.NATS.GroupName = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("LOOKUP_BASE_URL"); v != "" {
		cfg.Lookup.BaseURL = v
	}
	if v := os.Getenv("LOOKUP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LOOKUP_TIMEOUT value: %v", err)
		}
		cfg.Lookup.Timeout = d
	}
	if v := os.Getenv("LOOKUP_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOOKUP_MAX_STEPS value: %v", err)
		}
		cfg.Lookup.MaxSteps = n
	}
	if v := os.Getenv("LEADERBOARD_RANKING"); v != "" {
		cfg.Leaderboard.Ranking = v
	}
	if v := os.Getenv("LEADERBOARD_POINTS"); v != "" {
		cfg.Leaderboard.Points = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.Driver == DriverSQLite && cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:wordle.db"
	}
	if cfg.Database.Collection == "" {
		cfg.Database.Collection = "results"
	}
	if cfg.NATS.InboundTopic == "" {
		cfg.NATS.InboundTopic = "wordle.message.received"
	}
	if cfg.NATS.ReplyTopic == "" {
		cfg.NATS.ReplyTopic = "wordle.reply.ready"
	}
	if cfg.NATS.QueueGroup == "" {
		cfg.NATS.QueueGroup = "wordle-bot"
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.HTTP.RequestsPerSecond == 0 {
		cfg.HTTP.RequestsPerSecond = 5
	}
	if cfg.HTTP.Burst == 0 {
		cfg.HTTP.Burst = 10
	}
	if cfg.Lookup.BaseURL == "" {
		cfg.Lookup.BaseURL = "https://www.nytimes.com/svc/wordle/v2"
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 10 * time.Second
	}
	if cfg.Lookup.RequestsPerSecond == 0 {
		cfg.Lookup.RequestsPerSecond = 5
	}
	if cfg.Lookup.Burst == 0 {
		cfg.Lookup.Burst = 5
	}
	if cfg.Lookup.MaxSteps == 0 {
		cfg.Lookup.MaxSteps = 5000
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.Observability.LogFormat == "" {
		cfg.Observability.LogFormat = "text"
	}
}

// Validate rejects unknown drivers and policies and incomplete store settings.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn (DATABASE_URL) is required for the postgres driver")
		}
	case DriverSQLite, DriverMemory:
	case DriverFirestore:
		if c.Database.FirestoreProject == "" {
			return fmt.Errorf("database.firestore_project (FIRESTORE_PROJECT) is required for the firestore driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if _, err := c.Leaderboard.RankingPolicy(); err != nil {
		return fmt.Errorf("leaderboard.ranking: %w", err)
	}
	if _, err := c.Leaderboard.PointsPolicy(); err != nil {
		return fmt.Errorf("leaderboard.points: %w", err)
	}
	if c.Lookup.MaxSteps < 0 {
		return fmt.Errorf("lookup.max_steps must not be negative")
	}
	return nil
}
