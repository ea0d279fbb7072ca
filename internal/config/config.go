package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Notifications NotificationsConfig `toml:"notifications"`
	Booking       BookingConfig       `toml:"booking"`
	Pricing       PricingConfig       `toml:"pricing"`
	Quote         QuoteConfig         `toml:"quote"`
	Security      SecurityConfig      `toml:"security"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig кэш для подавления повторных заявок
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RateLimitConfig ограничение запросов с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	IdleTTL           int     `toml:"idle_ttl"` // секунды
	TrustProxy        bool    `toml:"trust_proxy"`
}

// NotificationsConfig внешний сервис уведомлений о новых заявках
type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig прием заявок
type BookingConfig struct {
	DailyCapacity          int `toml:"daily_capacity"`
	AdvanceBookingDays     int `toml:"advance_booking_days"`
	DuplicateWindowSeconds int `toml:"duplicate_window_seconds"`
}

// PricingConfig тарифы по умолчанию, пока в БД нет опубликованной версии
type PricingConfig struct {
	VolumeRate              float64 `toml:"volume_rate"`
	FreeDistanceThreshold   int     `toml:"free_distance_threshold"`
	ParkingRatePerMeter     float64 `toml:"parking_rate_per_meter"`
	NoElevatorFloorLimit    int     `toml:"no_elevator_floor_limit"`
	NoElevatorSurcharge     float64 `toml:"no_elevator_surcharge"`
	BrokenElevatorSurcharge float64 `toml:"broken_elevator_surcharge"`
	BoxUnitPrice            float64 `toml:"box_unit_price"`
	TapeUnitPrice           float64 `toml:"tape_unit_price"`
	BagUnitPrice            float64 `toml:"bag_unit_price"`
	HoursPerCubicMeter      float64 `toml:"hours_per_cubic_meter"`
	MinimumHours            int     `toml:"minimum_hours"`
}

// RateTable тарифы по умолчанию в доменном виде
func (p PricingConfig) RateTable() domain.RateTable {
	rates := domain.DefaultRateTable()
	rates.VolumeRate = p.VolumeRate
	rates.FreeDistanceThreshold = p.FreeDistanceThreshold
	rates.ParkingRatePerMeter = p.ParkingRatePerMeter
	rates.NoElevatorFloorLimit = p.NoElevatorFloorLimit
	rates.NoElevatorSurcharge = p.NoElevatorSurcharge
	rates.BrokenElevatorSurcharge = p.BrokenElevatorSurcharge
	rates.BoxUnitPrice = p.BoxUnitPrice
	rates.TapeUnitPrice = p.TapeUnitPrice
	rates.BagUnitPrice = p.BagUnitPrice
	rates.HoursPerCubicMeter = p.HoursPerCubicMeter
	rates.MinimumHours = p.MinimumHours
	return rates
}

// QuoteConfig переопределения модели детальной сметы; нулевые значения не меняют значения по умолчанию
type QuoteConfig struct {
	MinimumBasePrice        float64 `toml:"minimum_base_price"`
	FreeDistanceKm          float64 `toml:"free_distance_km"`
	RegionalRatePerKm       float64 `toml:"regional_rate_per_km"`
	LongDistanceRatePerKm   float64 `toml:"long_distance_rate_per_km"`
	ComboDiscountPerService float64 `toml:"combo_discount_per_service"`
	KeyCustomerDiscount     float64 `toml:"key_customer_discount"`
	LowSeasonDiscount       float64 `toml:"low_season_discount"`
}

// QuoteRates параметры сметы с учетом переопределений
func (q QuoteConfig) QuoteRates() domain.QuoteRates {
	rates := domain.DefaultQuoteRates()
	override(&rates.MinimumBasePrice, q.MinimumBasePrice)
	override(&rates.FreeDistanceKm, q.FreeDistanceKm)
	override(&rates.RegionalRatePerKm, q.RegionalRatePerKm)
	override(&rates.LongDistanceRatePerKm, q.LongDistanceRatePerKm)
	override(&rates.ComboDiscountPerService, q.ComboDiscountPerService)
	override(&rates.KeyCustomerDiscount, q.KeyCustomerDiscount)
	override(&rates.LowSeasonDiscount, q.LowSeasonDiscount)
	return rates
}

func override(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// SecurityConfig ключ шифрования адресов (hex, 32 байта); пусто = без шифрования
type SecurityConfig struct {
	FieldEncryptionKey string `toml:"field_encryption_key"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	rates := domain.DefaultRateTable()

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
			DBName:          "moving",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "moving_service",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
			IdleTTL:           600,
		},
		Notifications: NotificationsConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			DailyCapacity:          domain.DefaultDailyCapacity,
			AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
			DuplicateWindowSeconds: 10,
		},
		Pricing: PricingConfig{
			VolumeRate:              rates.VolumeRate,
			FreeDistanceThreshold:   rates.FreeDistanceThreshold,
			ParkingRatePerMeter:     rates.ParkingRatePerMeter,
			NoElevatorFloorLimit:    rates.NoElevatorFloorLimit,
			NoElevatorSurcharge:     rates.NoElevatorSurcharge,
			BrokenElevatorSurcharge: rates.BrokenElevatorSurcharge,
			BoxUnitPrice:            rates.BoxUnitPrice,
			TapeUnitPrice:           rates.TapeUnitPrice,
			BagUnitPrice:            rates.BagUnitPrice,
			HoursPerCubicMeter:      rates.HoursPerCubicMeter,
			MinimumHours:            rates.MinimumHours,
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию,
// затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Security.FieldEncryptionKey, "FIELD_ENCRYPTION_KEY")
	setString(&c.Notifications.URL, "NOTIFICATIONS_URL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// Validate проверяет, что значения имеют смысл
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Notifications.Enabled && c.Notifications.URL == "" {
		problems = append(problems, "notifications.url is required when notifications are enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	if c.Booking.DailyCapacity <= 0 {
		problems = append(problems, "booking.daily_capacity must be positive")
	}
	if c.Booking.AdvanceBookingDays < 0 || c.Booking.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		problems = append(problems, fmt.Sprintf("booking.advance_booking_days must be between 0 and %d", domain.MaxAdvanceBookingDays))
	}
	if c.Booking.DuplicateWindowSeconds < 0 {
		problems = append(problems, "booking.duplicate_window_seconds must not be negative")
	}
	p := c.Pricing
	if p.VolumeRate < 0 || p.ParkingRatePerMeter < 0 || p.NoElevatorSurcharge < 0 || p.BrokenElevatorSurcharge < 0 ||
		p.BoxUnitPrice < 0 || p.TapeUnitPrice < 0 || p.BagUnitPrice < 0 || p.HoursPerCubicMeter < 0 {
		problems = append(problems, "pricing rates must not be negative")
	}
	if p.FreeDistanceThreshold < 0 || p.NoElevatorFloorLimit < 0 || p.MinimumHours < 0 {
		problems = append(problems, "pricing thresholds must not be negative")
	}
	if key := c.Security.FieldEncryptionKey; key != "" && len(key) != 64 {
		problems = append(problems, "security.field_encryption_key must be 64 hex characters")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
