package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "LAUNDRY"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Timeslots TimeslotsConfig `toml:"timeslots"`
	Booking   BookingConfig   `toml:"booking"`
	Auth      AuthConfig      `toml:"auth"`
	Payments  PaymentsConfig  `toml:"payments"`
	Events    EventsConfig    `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// TimeslotsConfig настройки генерации слотов
type TimeslotsConfig struct {
	HorizonDays    int    `toml:"horizon_days" split_words:"true"`
	Location       string `toml:"location" split_words:"true"`         // IANA имя зоны, в которой заданы часы работы
	RefreshEnabled bool   `toml:"refresh_enabled" split_words:"true"`
	RefreshCron    string `toml:"refresh_cron" split_words:"true"` // crontab без секунд
}

// LoadLocation возвращает зону для расчета календарных дней
func (t TimeslotsConfig) LoadLocation() (*time.Location, error) {
	return time.LoadLocation(t.Location)
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	LockTimeoutMs int `toml:"lock_timeout_ms" split_words:"true"`
}

// AuthConfig настройки аутентификации
// Пустой JWTSecret означает доверие заголовку X-User-ID от API gateway
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" split_words:"true"`
}

// PaymentsConfig настройки платежного шлюза
type PaymentsConfig struct {
	WebhookSecret string `toml:"webhook_secret" split_words:"true"`
	Currency      string `toml:"currency" split_words:"true"`
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "laundry",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-laundryservice",
		},
		Timeslots: TimeslotsConfig{
			HorizonDays:    7,
			Location:       "UTC",
			RefreshEnabled: true,
			RefreshCron:    "5 0 * * *",
		},
		Booking: BookingConfig{
			LockTimeoutMs: 3000,
		},
		Payments: PaymentsConfig{
			Currency: "inr",
		},
		Events: EventsConfig{
			Exchange: "laundry.events",
		},
	}
}

// Load читает TOML файл, применяет переопределения из окружения и валидирует результат
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

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Timeslots.HorizonDays < 1 || c.Timeslots.HorizonDays > 60 {
		return fmt.Errorf("%w: timeslots.horizon_days must be in 1..60", ErrInvalidConfig)
	}
	if _, err := c.Timeslots.LoadLocation(); err != nil {
		return fmt.Errorf("%w: timeslots.location: %v", ErrInvalidConfig, err)
	}
	if c.Timeslots.RefreshEnabled && c.Timeslots.RefreshCron == "" {
		return fmt.Errorf("%w: timeslots.refresh_cron is required when refresh is enabled", ErrInvalidConfig)
	}
	if c.Booking.LockTimeoutMs < 0 {
		return fmt.Errorf("%w: booking.lock_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	return nil
}
