package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// Например: PLANNER_STORAGE_DRIVER=postgres, PLANNER_SERVER_HTTP_PORT=8080
const EnvPrefix = "planner"

// Драйверы хранилища событий
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
	StorageS3       = "s3"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Planner PlannerConfig `toml:"planner"`
	Storage StorageConfig `toml:"storage"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// PlannerConfig настройки планировщика
type PlannerConfig struct {
	// Каталог ресурсов (recursos.json) и правила (restricciones.json / .yaml)
	CatalogFile string `toml:"catalog_file" envconfig:"CATALOG_FILE"`
	RulesFile   string `toml:"rules_file" envconfig:"RULES_FILE"`

	// Максимальное количество дней вперёд для бронирования
	MaxAdvanceDays int `toml:"max_advance_days" envconfig:"MAX_ADVANCE_DAYS"`

	// Горизонт поиска ближайшей свободной даты (в днях)
	SearchHorizonDays int `toml:"search_horizon_days" envconfig:"SEARCH_HORIZON_DAYS"`
}

// StorageConfig настройки хранилища событий
type StorageConfig struct {
	Driver   string         `toml:"driver"`
	Timeout  int            `toml:"timeout"` // секунды на одну операцию сохранения/загрузки
	File     FileConfig     `toml:"file"`
	Postgres DatabaseConfig `toml:"postgres"`
	Mongo    MongoConfig    `toml:"mongo"`
	S3       S3Config       `toml:"s3"`
}

// FileConfig снимок событий в файле (.json или .cbor)
type FileConfig struct {
	Path string `toml:"path"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MongoConfig настройки MongoDB
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// S3Config настройки снимка событий в S3
type S3Config struct {
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Key      string `toml:"key"`
	Endpoint string `toml:"endpoint"` // пустой = AWS, иначе S3-совместимое хранилище (minio)
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc_event_planner",
		},
		Planner: PlannerConfig{
			CatalogFile:       "data/recursos.json",
			RulesFile:         "data/restricciones.json",
			MaxAdvanceDays:    365,
			SearchHorizonDays: 365,
		},
		Storage: StorageConfig{
			Driver:  StorageFile,
			Timeout: 5,
			File: FileConfig{
				Path: "data/eventos.json",
			},
			Postgres: DatabaseConfig{
				Host:            "localhost",
				Port:            5432,
				SSLMode:         "disable",
				MaxOpenConns:    10,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
			Mongo: MongoConfig{
				Database:   "planificador",
				Collection: "eventos",
			},
			S3: S3Config{
				Key: "eventos.json",
			},
		},
	}
}

// Load загружает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.Planner.CatalogFile == "" || c.Planner.RulesFile == "" {
		return fmt.Errorf("%w: planner.catalog_file and planner.rules_file are required", ErrInvalidConfig)
	}
	if c.Planner.MaxAdvanceDays <= 0 {
		return fmt.Errorf("%w: planner.max_advance_days must be positive", ErrInvalidConfig)
	}
	if c.Planner.SearchHorizonDays <= 0 {
		return fmt.Errorf("%w: planner.search_horizon_days must be positive", ErrInvalidConfig)
	}
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("%w: storage.timeout must be positive", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.File.Path == "" {
			return fmt.Errorf("%w: storage.file.path is required", ErrInvalidConfig)
		}
	case StoragePostgres:
		if c.Storage.Postgres.Host == "" || c.Storage.Postgres.DBName == "" {
			return fmt.Errorf("%w: storage.postgres.host and dbname are required", ErrInvalidConfig)
		}
	case StorageMongo:
		if c.Storage.Mongo.URI == "" {
			return fmt.Errorf("%w: storage.mongo.uri is required", ErrInvalidConfig)
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" || c.Storage.S3.Region == "" {
			return fmt.Errorf("%w: storage.s3.bucket and region are required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	return nil
}
