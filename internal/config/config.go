// Package config provides the structures and the loader for the YAML
// configuration shared by the server, the console and the alert pipeline.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every setting of the system.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Lifecycle               `yaml:"lifecycle"`
	RateLimit               `yaml:"rate_limit"`
	Rabbit                  `yaml:"rabbit"`
	SMTP                    `yaml:"smtp"`
	Console                 `yaml:"console"`
}

// HTTPServer configures the API server.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection configures the cache connection.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// JWTToken configures the bearer tokens issued on login.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"30m"`
}

// Lifecycle owns the warning-window threshold: the number of days before a
// subscription's end date at which it flips from active to expiring. The
// value is deliberately a configuration constant, not a hidden default in
// the classifier.
type Lifecycle struct {
	WarningWindowDays int `yaml:"warning_window_days" env-default:"30"`
}

// RateLimit configures the authenticated route limiter.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env-default:"10"`
	Burst             int     `yaml:"burst" env-default:"20"`
}

// Rabbit configures the alert event pipeline.
type Rabbit struct {
	RabbitURL      string        `yaml:"rabbit_url" env:"RABBIT_URL"`
	ConnectRetries int           `yaml:"connect_retries" env-default:"5"`
	ConnectDelay   time.Duration `yaml:"connect_delay" env-default:"3s"`
	ScanInterval   time.Duration `yaml:"scan_interval" env-default:"12h"`
}

// SMTP configures alert e-mail delivery.
type SMTP struct {
	SMTPHost      string `yaml:"smtp_host"`
	SMTPPort      string `yaml:"smtp_port" env-default:"587"`
	SMTPUser      string `yaml:"smtp_user"`
	SMTPPass      string `yaml:"smtp_pass" env:"SMTP_PASS"`
	OperatorEmail string `yaml:"operator_email"`
}

// Console configures the admin console client.
type Console struct {
	APIBaseURL     string        `yaml:"api_base_url" env:"API_BASE_URL" env-default:"http://localhost:8080/api"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"15s"`
	TokenFile      string        `yaml:"token_file"` // empty means the user config dir
}

// MustLoad reads the config file named by CONFIG_PATH and exits the process
// when it is missing or malformed.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
