package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST"            env:"PG_HOST"            env-default:"localhost"`
	Port            string        `yaml:"PG_PORT"            env:"PG_PORT"            env-default:"5432"`
	User            string        `yaml:"PG_USER"            env:"PG_USER"            env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD"        env:"PG_PASSWORD"        env-required:"true"`
	Name            string        `yaml:"PG_DBNAME"          env:"PG_DBNAME"          env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE"         env:"PG_SSLMODE"         env-default:"disable"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS"     env:"PG_MAX_OPEN_CONNS"  env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS"     env:"PG_MAX_IDLE_CONNS"  env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME"  env:"PG_CONN_MAX_LIFETIME"  env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST"     env:"REDIS_HOST"     env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT"     env:"REDIS_PORT"     env-default:"6379"`
	Username string `yaml:"REDIS_USER"     env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB"       env:"REDIS_DB"       env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE"  env:"WINDOW_SIZE"  env-default:"15m"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY"          env:"JWT_KEY"          env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED"           env:"OTEL_ENABLED"           env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME"      env:"OTEL_SERVICE_NAME"      env-default:"shopease"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4318"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO"     env:"OTEL_SAMPLER_RATIO"     env-default:"1.0"`
}

type SendGrid struct {
	Enabled   bool   `yaml:"ENABLED"    env:"SENDGRID_ENABLED"    env-default:"false"`
	APIKey    string `yaml:"API_KEY"    env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@shopease.local"`
	FromName  string `yaml:"FROM_NAME"  env:"SENDGRID_FROM_NAME"  env-default:"ShopEase"`
}

// SSLCommerz holds the merchant credentials and the callback and result URLs handed to the gateway.
type SSLCommerz struct {
	StoreID       string        `yaml:"STORE_ID"       env:"SSLCOMMERZ_STORE_ID"`
	StorePassword string        `yaml:"STORE_PASSWORD" env:"SSLCOMMERZ_STORE_PASSWORD"`
	APIURL        string        `yaml:"API_URL"        env:"SSLCOMMERZ_API_URL"        env-default:"https://sandbox.sslcommerz.com"`
	Sandbox       bool          `yaml:"SANDBOX"        env:"SSLCOMMERZ_SANDBOX"        env-default:"true"`
	Timeout       time.Duration `yaml:"TIMEOUT"        env:"SSLCOMMERZ_TIMEOUT"        env-default:"30s"`
	SuccessURL    string        `yaml:"SUCCESS_URL"    env:"SSLCOMMERZ_SUCCESS_URL"    env-default:"http://localhost:8080/api/payments/success"`
	FailURL       string        `yaml:"FAIL_URL"       env:"SSLCOMMERZ_FAIL_URL"       env-default:"http://localhost:8080/api/payments/fail"`
	CancelURL     string        `yaml:"CANCEL_URL"     env:"SSLCOMMERZ_CANCEL_URL"     env-default:"http://localhost:8080/api/payments/cancel"`
	IPNURL        string        `yaml:"IPN_URL"        env:"SSLCOMMERZ_IPN_URL"        env-default:"http://localhost:8080/api/payments/ipn"`
	// Pages the browser is redirected to after a callback is processed.
	ResultSuccessPage string `yaml:"RESULT_SUCCESS_PAGE" env:"SSLCOMMERZ_RESULT_SUCCESS_PAGE" env-default:"http://localhost:3000/payment/success"`
	ResultFailPage    string `yaml:"RESULT_FAIL_PAGE"    env:"SSLCOMMERZ_RESULT_FAIL_PAGE"    env-default:"http://localhost:3000/payment/failed"`
	ResultCancelPage  string `yaml:"RESULT_CANCEL_PAGE"  env:"SSLCOMMERZ_RESULT_CANCEL_PAGE"  env-default:"http://localhost:3000/payment/cancelled"`
}

type Kafka struct {
	Enabled            bool     `yaml:"ENABLED"              env:"KAFKA_ENABLED"              env-default:"false"`
	Brokers            []string `yaml:"BROKERS"              env:"KAFKA_BROKERS"              env-default:"localhost:9092"`
	OrderEventsTopic   string   `yaml:"ORDER_EVENTS_TOPIC"   env:"KAFKA_ORDER_EVENTS_TOPIC"   env-default:"shopease.orders"`
	PaymentEventsTopic string   `yaml:"PAYMENT_EVENTS_TOPIC" env:"KAFKA_PAYMENT_EVENTS_TOPIC" env-default:"shopease.payments"`
}

type Orders struct {
	DefaultCurrency      string `yaml:"DEFAULT_CURRENCY"       env:"ORDERS_DEFAULT_CURRENCY"       env-default:"BDT"`
	DefaultPaymentMethod string `yaml:"DEFAULT_PAYMENT_METHOD" env:"ORDERS_DEFAULT_PAYMENT_METHOD" env-default:"CREDIT_CARD"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Security     Security     `yaml:"security"`
	Otel         Otel         `yaml:"otel"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	SSLCommerz   SSLCommerz   `yaml:"sslcommerz"`
	Kafka        Kafka        `yaml:"kafka"`
	Orders       Orders       `yaml:"orders"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the yaml config file")
		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

// LoadConfigFromPath reads the yaml file and overlays environment variables on top of it.
func LoadConfigFromPath(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

func (r *RedisConnect) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
