package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/POS-ReservationService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// CatalogServiceConfig настройки клиента CatalogService
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig параметры движка доступности.
// Часы работы и шаг слотов настраиваются per-deployment, а не захардкожены.
type BookingConfig struct {
	OpenHour                int    `toml:"open_hour"`
	CloseHour               int    `toml:"close_hour"`
	SlotGranularityMinutes  int    `toml:"slot_granularity_minutes"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
	PendingTTLMinutes       int    `toml:"pending_ttl_minutes"`
	SweepSchedule           string `toml:"sweep_schedule"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "pos-reservation-service"
	}
	if cfg.CatalogService.Timeout == 0 {
		cfg.CatalogService.Timeout = 5
	}
	if cfg.Booking.OpenHour == 0 && cfg.Booking.CloseHour == 0 {
		cfg.Booking.OpenHour = domain.DefaultOpenHour
		cfg.Booking.CloseHour = domain.DefaultCloseHour
	}
	if cfg.Booking.SlotGranularityMinutes == 0 {
		cfg.Booking.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if cfg.Booking.MinBookingNoticeMinutes == 0 {
		cfg.Booking.MinBookingNoticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}
	if cfg.Booking.AdvanceBookingDays == 0 {
		cfg.Booking.AdvanceBookingDays = domain.DefaultAdvanceBookingDays
	}
	if cfg.Booking.PendingTTLMinutes == 0 {
		cfg.Booking.PendingTTLMinutes = 30
	}
	if cfg.Booking.SweepSchedule == "" {
		cfg.Booking.SweepSchedule = "*/10 * * * *"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if cfg.CatalogService.URL == "" {
		return fmt.Errorf("catalog_service.url is required")
	}
	if cfg.Booking.OpenHour < 0 || cfg.Booking.OpenHour > 23 {
		return fmt.Errorf("booking.open_hour must be in [0, 23]")
	}
	if cfg.Booking.CloseHour < 1 || cfg.Booking.CloseHour > 24 {
		return fmt.Errorf("booking.close_hour must be in [1, 24]")
	}
	if cfg.Booking.OpenHour >= cfg.Booking.CloseHour {
		return fmt.Errorf("booking.open_hour must be before booking.close_hour")
	}
	if cfg.Booking.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		cfg.Booking.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("booking.slot_granularity_minutes must be in [%d, %d]",
			domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}
	if cfg.Booking.AdvanceBookingDays < 0 || cfg.Booking.AdvanceBookingDays > 365 {
		return fmt.Errorf("booking.advance_booking_days must be in [0, 365]")
	}
	return nil
}
