package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix         = "LOCA"
	DefaultConfigFile = "./config.yml"
	DefaultEnvFile    = "./config.env"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverBoltDB   = "boltdb"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string          `yaml:"git_commit" envconfig:"LOCA_GIT_COMMIT"`
	GitTag             string          `yaml:"git_tag" envconfig:"LOCA_GIT_TAG"`
	BuildTime          string          `yaml:"build_time" envconfig:"LOCA_BUILD_TIME"`
	IsProduction       bool            `yaml:"is_production" envconfig:"LOCA_IS_PRODUCTION"`
	LogLevel           zapcore.Level   `yaml:"log_level" envconfig:"LOCA_LOG_LEVEL"`
	LogFile            string          `yaml:"log_file" envconfig:"LOCA_LOG_FILE"`
	OpsEndpointsEnable bool            `yaml:"ops_endpoints_enable" envconfig:"LOCA_OPS_ENDPOINTS_ENABLE"`
	Server             ServerConfig    `yaml:"server" envconfig:"SERVER"`
	RateLimit          RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Storage            StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Client             ClientConfig    `yaml:"client" envconfig:"CLIENT"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"LOCA_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"LOCA_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"LOCA_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"LOCA_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"LOCA_SERVER_REQUEST_TIMEOUT"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"LOCA_SERVER_SHUTDOWN_TIMEOUT"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"LOCA_RATE_LIMIT_ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"LOCA_RATE_LIMIT_RPS"`
	Burst   int     `yaml:"burst" envconfig:"LOCA_RATE_LIMIT_BURST"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver" envconfig:"LOCA_STORAGE_DRIVER"`
	File     FileConfig     `yaml:"file" envconfig:"FILE"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"REDIS"`
	BoltDB   BoltDBConfig   `yaml:"boltdb" envconfig:"BOLTDB"`
	Postgres PostgresConfig `yaml:"postgres" envconfig:"POSTGRES"`
}

type FileConfig struct {
	Path        string        `yaml:"path" envconfig:"LOCA_STORAGE_FILE_PATH"`
	LockTimeout time.Duration `yaml:"lock_timeout" envconfig:"LOCA_STORAGE_FILE_LOCK_TIMEOUT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"LOCA_STORAGE_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"LOCA_STORAGE_REDIS_PORT"`
	Key           string        `yaml:"key" envconfig:"LOCA_STORAGE_REDIS_KEY"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"LOCA_STORAGE_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"LOCA_STORAGE_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"LOCA_STORAGE_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"LOCA_STORAGE_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"LOCA_STORAGE_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"LOCA_STORAGE_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"LOCA_STORAGE_REDIS_PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"LOCA_STORAGE_REDIS_DATABASE_INDEX"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LOCA_STORAGE_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LOCA_STORAGE_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"LOCA_STORAGE_BOLTDB_BUCKET_NAME"`
}

type PostgresConfig struct {
	DSN            string        `yaml:"dsn" envconfig:"LOCA_STORAGE_POSTGRES_DSN" json:"-"`
	MaxConns       int32         `yaml:"max_conns" envconfig:"LOCA_STORAGE_POSTGRES_MAX_CONNS"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"LOCA_STORAGE_POSTGRES_CONNECT_TIMEOUT"`
}

type ClientConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"LOCA_CLIENT_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"LOCA_CLIENT_TIMEOUT"`
}

// LoadConfigFile provides an instance of config structure for the all application.
// A missing file is not an error: the returned config only holds zero values.
func LoadConfigFile(configFile string) (*Config, error) {
	cfg := &Config{}
	file, err := os.Open(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	yd := yaml.NewDecoder(file)
	if err = yd.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and overrides the matching config values.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	setDefaults(config)

	switch config.Storage.Driver {
	case DriverFile, DriverMemory:
	case DriverBoltDB:
		if len(config.Storage.BoltDB.FilePath) == 0 {
			return errors.New("make sure to set a valid boltdb file path in configuration file")
		}
	case DriverRedis:
		if len(config.Storage.Redis.Host) == 0 || len(config.Storage.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
	case DriverPostgres:
		if len(config.Storage.Postgres.DSN) == 0 {
			return errors.New("make sure to set a valid postgres dsn in configuration file")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.RateLimit.Enabled && (config.RateLimit.RPS <= 0 || config.RateLimit.Burst <= 0) {
		return errors.New("make sure to set positive rate limit rps and burst values")
	}

	return nil
}

func setDefaults(config *Config) {
	if len(config.LogFile) == 0 {
		config.LogFile = "./logs/locadora.log"
	}
	if len(config.Server.Port) == 0 {
		config.Server.Port = "3001"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 10 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30 * time.Second
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 15 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 10 * time.Second
	}
	if len(config.Storage.Driver) == 0 {
		config.Storage.Driver = DriverFile
	}
	if len(config.Storage.File.Path) == 0 {
		config.Storage.File.Path = "./database/filmes.json"
	}
	if config.Storage.File.LockTimeout == 0 {
		config.Storage.File.LockTimeout = 5 * time.Second
	}
	if len(config.Storage.Redis.Key) == 0 {
		config.Storage.Redis.Key = "movies"
	}
	if len(config.Storage.BoltDB.BucketName) == 0 {
		config.Storage.BoltDB.BucketName = "movies"
	}
	if config.Storage.BoltDB.Timeout == 0 {
		config.Storage.BoltDB.Timeout = 5 * time.Second
	}
	if config.Storage.Postgres.ConnectTimeout == 0 {
		config.Storage.Postgres.ConnectTimeout = 5 * time.Second
	}
	if len(config.Client.BaseURL) == 0 {
		host := config.Server.Host
		if host == "" || host == "0.0.0.0" {
			host = "localhost"
		}
		config.Client.BaseURL = "http://" + host + ":" + config.Server.Port
	}
	if config.Client.Timeout == 0 {
		config.Client.Timeout = 10 * time.Second
	}
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(configFile)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `LOCA`.
	err = LoadConfigEnvs(EnvPrefix, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
