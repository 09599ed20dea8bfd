// Package config предоставляет структуры и функции для загрузки конфигурации портала.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env             string          `yaml:"env" env:"PORTAL_ENV" env-default:"local"`
	StickyIO        StickyIO        `yaml:"sticky_io"`
	Lookup          Lookup          `yaml:"lookup"`
	Fetch           Fetch           `yaml:"fetch"`
	RedisConnection RedisConnection `yaml:"redis_connection"`
	Metrics         Metrics         `yaml:"metrics"`
}

// StickyIO настройки подключения к внешней системе заказов.
type StickyIO struct {
	BaseURL  string        `yaml:"base_url" env:"STICKY_BASE_URL" env-required:"true"`
	Username string        `yaml:"username" env:"STICKY_USERNAME"`
	Password string        `yaml:"password" env:"STICKY_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env-default:"60s"`
}

// LookupDateLayout формат дат диапазона поиска покупателя.
const LookupDateLayout = "01/02/2006"

// Lookup диапазон дат для поиска покупателя, формат MM/DD/YYYY.
// Пустой EndDate означает конец текущего года.
type Lookup struct {
	StartDate string `yaml:"start_date" env-default:"01/01/2020"`
	EndDate   string `yaml:"end_date"`
}

// End возвращает конец диапазона поиска относительно now.
func (l Lookup) End(now time.Time) string {
	if l.EndDate != "" {
		return l.EndDate
	}
	return time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC).Format(LookupDateLayout)
}

// Fetch параметры параллельной загрузки заказов.
type Fetch struct {
	Concurrency int     `yaml:"concurrency" env-default:"4"`
	RPS         float64 `yaml:"rps" env-default:"10"`
	Burst       int     `yaml:"burst" env-default:"4"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеширование заказов.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	OrderTTL     time.Duration `yaml:"order_ttl" env-default:"10m"`
}

// Metrics настройки выгрузки метрик.
// Textfile — путь для node_exporter textfile collector, пустой путь отключает выгрузку.
type Metrics struct {
	Textfile string `yaml:"textfile" env:"METRICS_TEXTFILE"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if path == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("config path is empty"))
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// CacheEnabled сообщает, задан ли адрес redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisConnection.AddressRedis != ""
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StickyIO:\n"+
			"  BaseURL: %s\n"+
			"  Username: %s\n"+
			"  Password: %s\n"+
			"  Timeout: %s\n"+
			"Lookup: %s - %s\n"+
			"Fetch:\n"+
			"  Concurrency: %d\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  OrderTTL: %s\n"+
			"Metrics:\n"+
			"  Textfile: %s\n",
		c.Env,
		c.StickyIO.BaseURL,
		c.StickyIO.Username,
		mask(c.StickyIO.Password),
		c.StickyIO.Timeout,
		c.Lookup.StartDate,
		c.Lookup.EndDate,
		c.Fetch.Concurrency,
		c.Fetch.RPS,
		c.Fetch.Burst,
		c.RedisConnection.AddressRedis,
		c.RedisConnection.DB,
		c.RedisConnection.OrderTTL,
		c.Metrics.Textfile,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
