package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	kbdb "github.com/yungbote/knowledge-backend/internal/db"
	"github.com/yungbote/knowledge-backend/internal/observability"
	"github.com/yungbote/knowledge-backend/internal/platform/envutil"
)

// Duration accepts "5s" style strings or integer nanoseconds in YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must look like \"5s\": %w", err)
	}
	d.Duration = dd
	return nil
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	CORSOrigins       []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`

	AutoMigrate        bool     `yaml:"auto_migrate"`
	MaxOpenConns       int      `yaml:"max_open_conns"`
	MaxIdleConns       int      `yaml:"max_idle_conns"`
	ConnMaxLifetime    Duration `yaml:"conn_max_lifetime"`
	SlowQueryThreshold Duration `yaml:"slow_query_threshold"`
	LogLevel           string   `yaml:"log_level"`
}

type OtelConfig struct {
	Enabled     bool              `yaml:"enabled"`
	ServiceName string            `yaml:"service_name"`
	Endpoint    string            `yaml:"endpoint"`
	Insecure    bool              `yaml:"insecure"`
	Headers     map[string]string `yaml:"headers"`
	SampleRatio float64           `yaml:"sample_ratio"`
}

type MetricsConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Namespace      string   `yaml:"namespace"`
	ScrapeInterval Duration `yaml:"scrape_interval"`
}

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Otel     OtelConfig     `yaml:"otel"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8000",
			ReadHeaderTimeout: Duration{Duration: 10 * time.Second},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
		},
		Database: DatabaseConfig{
			Driver:             kbdb.DriverPostgres,
			Host:               "localhost",
			Port:               "5432",
			User:               "postgres",
			Name:               "knowledge",
			SSLMode:            "disable",
			AutoMigrate:        true,
			MaxOpenConns:       20,
			MaxIdleConns:       10,
			ConnMaxLifetime:    Duration{Duration: 30 * time.Minute},
			SlowQueryThreshold: Duration{Duration: 200 * time.Millisecond},
			LogLevel:           "warn",
		},
		Otel: OtelConfig{
			ServiceName: "knowledge-backend",
			SampleRatio: 0.1,
		},
		Metrics: MetricsConfig{
			Namespace:      "kb",
			ScrapeInterval: Duration{Duration: 15 * time.Second},
		},
	}
}

// Load resolves configuration from defaults, then the YAML file named by
// KB_CONFIG_PATH (or ./config/config.yaml when present), then environment
// overrides.
func Load() (*Config, error) {
	cfgPath := strings.TrimSpace(os.Getenv("KB_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	return LoadFile(cfgPath)
}

// LoadFile is Load with an explicit file path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	if origins := envutil.String("CORS_ORIGINS", ""); origins != "" {
		cfg.HTTP.CORSOrigins = strings.Split(origins, ",")
	}

	db := &cfg.Database
	db.Driver = envutil.String("DATABASE_DRIVER", db.Driver)
	db.DSN = envutil.String("DATABASE_URL", db.DSN)
	db.Host = envutil.String("POSTGRES_HOST", db.Host)
	db.Port = envutil.String("POSTGRES_PORT", db.Port)
	db.User = envutil.String("POSTGRES_USER", db.User)
	db.Password = envutil.String("POSTGRES_PASSWORD", db.Password)
	db.Name = envutil.String("POSTGRES_NAME", db.Name)
	db.SSLMode = envutil.String("POSTGRES_SSLMODE", db.SSLMode)
	db.AutoMigrate = envutil.Bool("DB_AUTO_MIGRATE", db.AutoMigrate)
	db.LogLevel = envutil.String("DB_LOG_LEVEL", db.LogLevel)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)
	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http.addr is required")
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case kbdb.DriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return errors.New("database.host or database.dsn is required for postgres")
		}
	case kbdb.DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", kbdb.DriverPostgres, kbdb.DriverSQLite, c.Database.Driver)
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		return fmt.Errorf("otel.sample_ratio must be within [0,1], got %v", c.Otel.SampleRatio)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("database pool sizes must be >= 0")
	}
	return nil
}

// TracingConfig translates the otel section for internal/observability.
func (c *Config) TracingConfig(version string) observability.OtelConfig {
	o := c.Otel
	return observability.OtelConfig{
		Enabled:        o.Enabled,
		ServiceName:    o.ServiceName,
		Environment:    c.Env,
		Version:        version,
		DatabaseDriver: c.Database.Driver,
		Endpoint:       o.Endpoint,
		Insecure:       o.Insecure,
		Headers:        o.Headers,
		SampleRatio:    o.SampleRatio,
	}
}

// DBConfig translates the database section for internal/db.
func (c *Config) DBConfig() kbdb.Config {
	d := c.Database
	return kbdb.Config{
		Driver:             d.Driver,
		DSN:                d.DSN,
		Host:               d.Host,
		Port:               d.Port,
		User:               d.User,
		Password:           d.Password,
		Name:               d.Name,
		SSLMode:            d.SSLMode,
		MaxOpenConns:       d.MaxOpenConns,
		MaxIdleConns:       d.MaxIdleConns,
		ConnMaxLifetime:    d.ConnMaxLifetime.Duration,
		SlowQueryThreshold: d.SlowQueryThreshold.Duration,
		LogLevel:           d.LogLevel,
	}
}
