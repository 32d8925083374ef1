package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config captures environment driven configuration values for the conference service.
type Config struct {
	HTTPAddr    string        `envconfig:"CONFERENCE_HTTP_ADDR" default:":8080"`
	SQLitePath  string        `envconfig:"CONFERENCE_SQLITE_PATH" default:"conference.db"`
	TokenSecret string        `envconfig:"CONFERENCE_TOKEN_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"CONFERENCE_TOKEN_TTL" default:"24h"`

	SnapshotKeep    int           `envconfig:"CONFERENCE_SNAPSHOT_KEEP" default:"10"`
	StatsCacheTTL   time.Duration `envconfig:"CONFERENCE_STATS_CACHE_TTL" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"CONFERENCE_SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"CONFERENCE_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"CONFERENCE_LOG_FORMAT" default:"json"`

	// Bootstrap organizer account created on first start when the
	// username does not already exist. Both fields must be set together.
	OrganizerUsername string `envconfig:"CONFERENCE_ORGANIZER_USERNAME"`
	OrganizerPassword string `envconfig:"CONFERENCE_ORGANIZER_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.TokenSecret) == "" {
		return fmt.Errorf("config: CONFERENCE_TOKEN_SECRET must not be blank")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: CONFERENCE_TOKEN_TTL must be positive")
	}
	if c.SnapshotKeep <= 0 {
		return fmt.Errorf("config: CONFERENCE_SNAPSHOT_KEEP must be positive")
	}
	if (c.OrganizerUsername == "") != (c.OrganizerPassword == "") {
		return fmt.Errorf("config: CONFERENCE_ORGANIZER_USERNAME and CONFERENCE_ORGANIZER_PASSWORD must be set together")
	}
	return nil
}
