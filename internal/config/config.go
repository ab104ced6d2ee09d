package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"planner.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"MOVE_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress string `envconfig:"MOVE_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel       string `envconfig:"MOVE_PLANNER_LOG_LEVEL" default:"info"`
	// HTTPLogging turns on per-request access logs.
	HTTPLogging bool `envconfig:"MOVE_PLANNER_HTTP_LOGGING" default:"true"`
	Reference   referenceConfig
	// MigrationFolder overrides the embedded schema migrations when set.
	MigrationFolder string   `envconfig:"MOVE_PLANNER_MIGRATIONS_FOLDER" default:""`
	CorsOrigins     []string `envconfig:"MOVE_PLANNER_CORS_ORIGINS" default:"*"`
	// EventsWriter selects where snapshot events go: stdout or none.
	EventsWriter string `envconfig:"MOVE_PLANNER_EVENTS_WRITER" default:"stdout"`
	EventsTopic  string `envconfig:"MOVE_PLANNER_EVENTS_TOPIC" default:"smartstow.moveplanner.events"`
}

type referenceConfig struct {
	// Version is the table used when a request does not name one.
	Version string `envconfig:"MOVE_PLANNER_REFERENCE_VERSION" default:"3.0"`
	// File is an optional extra table registered next to the embedded presets.
	File string `envconfig:"MOVE_PLANNER_REFERENCE_FILE" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a fresh configuration with every default applied and an in-memory sqlite database.
// It ignores the environment and is meant for tests.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:        ":3443",
			MetricsAddress: ":8080",
			LogLevel:       "info",
			HTTPLogging:    true,
			Reference: referenceConfig{
				Version: "3.0",
			},
			CorsOrigins:  []string{"*"},
			EventsWriter: "none",
			EventsTopic:  "smartstow.moveplanner.events",
		},
	}
}
