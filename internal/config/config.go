package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

type Config struct {
	App      App      `yaml:"app"`
	HTTP     HTTP     `yaml:"http"`
	Storage  Storage  `yaml:"storage"`
	MySQL    MySQL    `yaml:"mysql"`
	Postgres Postgres `yaml:"postgres"`
	MongoDB  MongoDB  `yaml:"mongodb"`
	Auth     Auth     `yaml:"auth"`
	Kafka    Kafka    `yaml:"kafka"`
	Redis    Redis    `yaml:"redis"`
}

type App struct {
	Name     string `yaml:"name"      env:"APP_NAME"      env-default:"cafe-admin"`
	LogLevel string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"info"`
}

type HTTP struct {
	Port            int           `yaml:"port"             env:"HTTP_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mysql"`
}

type MySQL struct {
	DSN             string        `yaml:"dsn"               env:"MYSQL_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"MYSQL_MAX_OPEN_CONNS"    env-default:"20"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"MYSQL_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"MYSQL_CONN_MAX_LIFETIME" env-default:"30m"`
}

type Postgres struct {
	DSN             string        `yaml:"dsn"                env:"POSTGRES_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"POSTGRES_MAX_CONNS"          env-default:"20"`
	MinConns        int32         `yaml:"min_conns"          env:"POSTGRES_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"POSTGRES_MAX_CONN_LIFETIME"  env-default:"30m"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"POSTGRES_MAX_CONN_IDLE_TIME" env-default:"5m"`
}

type MongoDB struct {
	URI      string `yaml:"uri"      env:"MONGODB_URI"`
	Database string `yaml:"database" env:"MONGODB_DATABASE" env-default:"cafe"`
}

type Auth struct {
	JWTSecret     string        `yaml:"jwt_secret"     env:"AUTH_JWT_SECRET"     env-required:"true"`
	Issuer        string        `yaml:"issuer"         env:"AUTH_ISSUER"         env-default:"cafe-admin"`
	TokenTTL      time.Duration `yaml:"token_ttl"      env:"AUTH_TOKEN_TTL"      env-default:"24h"`
	BcryptCost    int           `yaml:"bcrypt_cost"    env:"AUTH_BCRYPT_COST"    env-default:"10"`
	AdminName     string        `yaml:"admin_name"     env:"AUTH_ADMIN_NAME"     env-default:"Administrator"`
	AdminEmail    string        `yaml:"admin_email"    env:"AUTH_ADMIN_EMAIL"`
	AdminPassword string        `yaml:"admin_password" env:"AUTH_ADMIN_PASSWORD"`
}

// Kafka is disabled when Brokers is empty.
type Kafka struct {
	Brokers string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string `yaml:"topic"   env:"KAFKA_TOPIC"   env-default:"cafe.orders"`
}

func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Redis is disabled when Addr is empty.
type Redis struct {
	Addr           string        `yaml:"addr"            env:"REDIS_ADDR"`
	Password       string        `yaml:"password"        env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db"              env:"REDIS_DB"              env-default:"0"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl" env:"REDIS_IDEMPOTENCY_TTL" env-default:"24h"`
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn is required for driver %q", c.Storage.Driver)
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for driver %q", c.Storage.Driver)
		}
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("mongodb.uri is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	return nil
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("reading config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(path string) *Config {
	if path == "" {
		panic("Config path is not set")
	}

	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
