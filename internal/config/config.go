package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `json:"server"`
	Database      DatabaseConfig      `json:"database"`
	PCAF          PCAFConfig          `json:"pcaf"`
	Authoritative AuthoritativeConfig `json:"authoritative"`
	Export        ExportConfig        `json:"export"`
	Logging       LoggingConfig       `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration. An empty host disables
// persistence; the engine then runs on the embedded factor set only.
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"db_name"`
	SSLMode        string        `json:"ssl_mode"`
	MaxConnections int           `json:"max_connections"`
	MaxIdleConns   int           `json:"max_idle_conns"`
	MaxLifetime    time.Duration `json:"max_lifetime"`
}

// PCAFConfig holds the tunable methodology parameters.
type PCAFConfig struct {
	// ScoreTable maps PCAF data options to 1-5 scores
	ScoreTable map[string]int `json:"score_table"`
	// CompliantThreshold / NeedsImprovementThreshold bound the weighted score
	CompliantThreshold        float64 `json:"compliant_threshold"`
	NeedsImprovementThreshold float64 `json:"needs_improvement_threshold"`
	// FacilityHorizonYears is the projection horizon for LCs and guarantees
	FacilityHorizonYears int `json:"facility_horizon_years"`
	// DaysPerMonth is the temporal-attribution month approximation
	DaysPerMonth float64 `json:"days_per_month"`
	// BatchConcurrency bounds the batch calculation worker pool
	BatchConcurrency int `json:"batch_concurrency"`
	// SummaryCacheTTL controls portfolio summary caching
	SummaryCacheTTL time.Duration `json:"summary_cache_ttl"`
	// RefreshSchedule is the cron spec for portfolio re-aggregation
	RefreshSchedule string `json:"refresh_schedule"`
}

// AuthoritativeConfig configures the optional external calculation service.
// An empty URL disables the authoritative path entirely.
type AuthoritativeConfig struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

// ExportConfig configures report export storage
type ExportConfig struct {
	S3Bucket string `json:"s3_bucket"`
	S3Region string `json:"s3_region"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Port:           5432,
			DBName:         "pcaf_emissions",
			SSLMode:        "disable",
			MaxConnections: 25,
			MaxIdleConns:   5,
		},
		PCAF: PCAFConfig{
			CompliantThreshold:        3.0,
			NeedsImprovementThreshold: 4.0,
			FacilityHorizonYears:      3,
			DaysPerMonth:              30.44,
			BatchConcurrency:          8,
			SummaryCacheTTL:           5 * time.Minute,
			RefreshSchedule:           "@every 5m",
		},
		Authoritative: AuthoritativeConfig{
			Timeout: 5 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if url := os.Getenv("AUTHORITATIVE_URL"); url != "" {
		config.Authoritative.URL = url
	}
	if bucket := os.Getenv("EXPORT_S3_BUCKET"); bucket != "" {
		config.Export.S3Bucket = bucket
	}
	if region := os.Getenv("EXPORT_S3_REGION"); region != "" {
		config.Export.S3Region = region
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
