package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" validate:"oneof=dev stage prod"`
	BaseURL    string `yaml:"base_url" env:"BASE_URL" validate:"required,url"`
	Storage    string `yaml:"storage" env:"APP_STORAGE" validate:"oneof=postgres memory"`
	ShortURL   `yaml:"short_url" envPrefix:"SHORT_URL_"`
	HTTPServer `yaml:"http_server" envPrefix:"HTTP_SERVER_"`
	RateLimit  `yaml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	Postgres   `yaml:"postgres" envPrefix:"POSTGRES_"`
}

type ShortURL struct {
	IDLength     int `yaml:"id_length" env:"ID_LENGTH" validate:"gt=0,lte=32"`
	AttemptLimit int `yaml:"attempt_limit" env:"ATTEMPT_LIMIT" validate:"gt=0"`
}

var defaultShortURL = ShortURL{
	IDLength:     7,
	AttemptLimit: 5,
}

type HTTPServer struct {
	Port           int           `yaml:"port" env:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	MaxHeaderBytes int           `yaml:"max_header_bytes" env:"MAX_HEADER_BYTES"`
	MaxConnections int           `yaml:"max_connections" env:"MAX_CONNECTIONS" validate:"gte=0"`
	CertFile       string        `yaml:"cert_file" env:"CERT_FILE"`
	KeyFile        string        `yaml:"key_file" env:"KEY_FILE"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type RateLimit struct {
	Enabled bool          `yaml:"enabled" env:"ENABLED"`
	RPS     float64       `yaml:"rps" env:"RPS" validate:"gte=0"`
	Burst   int           `yaml:"burst" env:"BURST" validate:"gte=0"`
	TTL     time.Duration `yaml:"ttl" env:"TTL"`
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	RPS:     10,
	Burst:   20,
	TTL:     3 * time.Minute,
}

type Postgres struct {
	User            string        `yaml:"user" env:"USER"`
	Password        string        `yaml:"password" env:"PASSWORD"`
	Host            string        `yaml:"host" env:"HOST"`
	Port            int           `yaml:"port" env:"PORT"`
	DB              string        `yaml:"db" env:"DB"`
	SSLMode         string        `yaml:"sslmode" env:"SSLMODE"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MigrationsPath  string        `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	MigrationsPath:  "file://migrations",
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

// Load reads the YAML config file at path on top of the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse environment: %w", op, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.BaseURL = "http://localhost:8080"
	cfg.Storage = StoragePostgres
	cfg.ShortURL = defaultShortURL
	cfg.HTTPServer = defaultHTTPServer
	cfg.RateLimit = defaultRateLimit
	cfg.Postgres = defaultPostgres
}
