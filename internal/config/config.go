package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Storage      StorageConfig      `toml:"storage"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	NATS         NATSConfig         `toml:"nats"`
	Schedule     ScheduleConfig     `toml:"schedule"`
	Availability AvailabilityConfig `toml:"availability"`
	Booking      BookingConfig      `toml:"booking"`
	Seed         SeedConfig         `toml:"seed"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор хранилища: postgres или memory
type StorageConfig struct {
	Driver string `toml:"driver"`
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

// RedisConfig кэш партнеров. Отключен, если enabled = false
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// NATSConfig публикация событий бронирования. Отключена, если enabled = false
type NATSConfig struct {
	Enabled       bool   `toml:"enabled"`
	URL           string `toml:"url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// ScheduleConfig канонический дневной шаблон слотов
type ScheduleConfig struct {
	Times           []string `toml:"times"`
	DurationMinutes int      `toml:"duration_minutes"`
}

type AvailabilityConfig struct {
	BaselineMode string `toml:"baseline_mode"` // all | future | none
}

type BookingConfig struct {
	RefundWindowHours int `toml:"refund_window_hours"`
}

// SeedConfig начальные данные для хранилища memory
type SeedConfig struct {
	Partners      []SeedPartner      `toml:"partners"`
	DiscountCodes []SeedDiscountCode `toml:"discount_codes"`
}

type SeedPartner struct {
	ID              int64  `toml:"id"`
	Name            string `toml:"name"`
	Price1PaxCents  int64  `toml:"price_1pax_cents"`
	Price2PlusCents int64  `toml:"price_2plus_cents"`
	FeePercent      string `toml:"fee_percent"`
	DailyCapacity   int    `toml:"daily_capacity"`
	Timezone        string `toml:"timezone"`
}

type SeedDiscountCode struct {
	ID             int64      `toml:"id"`
	PartnerID      *int64     `toml:"partner_id"`
	Code           string     `toml:"code"`
	Type           string     `toml:"type"`
	Percent        int        `toml:"percent"`
	AmountCents    int64      `toml:"amount_cents"`
	ValidFrom      *time.Time `toml:"valid_from"`
	ValidUntil     *time.Time `toml:"valid_until"`
	MaxRedemptions *int       `toml:"max_redemptions"`
	Active         bool       `toml:"active"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует ее
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "slot-booking-service"
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 300
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "slotbooking"
	}
	if c.Schedule.DurationMinutes == 0 {
		c.Schedule.DurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Availability.BaselineMode == "" {
		c.Availability.BaselineMode = string(domain.BaselineFuture)
	}
	if c.Booking.RefundWindowHours == 0 {
		c.Booking.RefundWindowHours = int(domain.DefaultRefundWindow / time.Hour)
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database host and dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("%w: nats url is required when nats is enabled", ErrInvalidConfig)
	}

	if _, err := c.ScheduleTemplate(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}
	if _, err := domain.ParseBaselineMode(c.Availability.BaselineMode, domain.BaselineFuture); err != nil {
		return fmt.Errorf("%w: availability: %v", ErrInvalidConfig, err)
	}
	if c.Booking.RefundWindowHours < 0 {
		return fmt.Errorf("%w: booking refund_window_hours must not be negative", ErrInvalidConfig)
	}

	for _, p := range c.Seed.Partners {
		if _, err := p.ToDomain(); err != nil {
			return fmt.Errorf("%w: seed partner id=%d: %v", ErrInvalidConfig, p.ID, err)
		}
	}
	for _, d := range c.Seed.DiscountCodes {
		if _, err := d.ToDomain(); err != nil {
			return fmt.Errorf("%w: seed discount code %q: %v", ErrInvalidConfig, d.Code, err)
		}
	}
	return nil
}

// ScheduleTemplate возвращает шаблон дня. Пустой список времен означает шаблон по умолчанию
func (c *Config) ScheduleTemplate() (domain.ScheduleTemplate, error) {
	if len(c.Schedule.Times) == 0 {
		tpl := domain.DefaultScheduleTemplate()
		tpl.SlotDurationMinutes = c.Schedule.DurationMinutes
		if tpl.SlotDurationMinutes < domain.MinSlotDurationMinutes || tpl.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
			return domain.ScheduleTemplate{}, fmt.Errorf("slot duration must be between %d and %d minutes",
				domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
		return tpl, nil
	}
	return domain.NewScheduleTemplate(c.Schedule.Times, c.Schedule.DurationMinutes)
}

// BaselineMode режим учета виртуальных слотов по умолчанию
func (c *Config) BaselineMode() domain.BaselineMode {
	mode, _ := domain.ParseBaselineMode(c.Availability.BaselineMode, domain.BaselineFuture)
	return mode
}

// RefundWindow окно бесплатной отмены
func (c *Config) RefundWindow() time.Duration {
	return time.Duration(c.Booking.RefundWindowHours) * time.Hour
}

// RedisTTL время жизни записи кэша партнеров
func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

// ToDomain конвертирует партнера из конфигурации в доменную модель
func (p SeedPartner) ToDomain() (domain.Partner, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(p.FeePercent))
	if err != nil {
		return domain.Partner{}, fmt.Errorf("invalid fee_percent %q: %v", p.FeePercent, err)
	}
	if fee.IsNegative() || fee.GreaterThan(decimal.NewFromInt(domain.MaxFeePercent)) {
		return domain.Partner{}, fmt.Errorf("fee_percent must be between 0 and %d", domain.MaxFeePercent)
	}

	partner := domain.Partner{
		ID:              p.ID,
		Name:            p.Name,
		Price1PaxCents:  p.Price1PaxCents,
		Price2PlusCents: p.Price2PlusCents,
		FeePercent:      fee,
		DailyCapacity:   p.DailyCapacity,
		Timezone:        p.Timezone,
	}
	if partner.Timezone == "" {
		partner.Timezone = domain.DefaultTimezone
	}
	if _, err := partner.Location(); err != nil {
		return domain.Partner{}, err
	}
	return partner, nil
}

// ToDomain конвертирует промокод из конфигурации в доменную модель
func (d SeedDiscountCode) ToDomain() (domain.DiscountCode, error) {
	code := domain.DiscountCode{
		ID:             d.ID,
		PartnerID:      d.PartnerID,
		Code:           domain.NormalizeCode(d.Code),
		Type:           domain.DiscountType(strings.ToUpper(d.Type)),
		Percent:        d.Percent,
		AmountCents:    d.AmountCents,
		ValidFrom:      d.ValidFrom,
		ValidUntil:     d.ValidUntil,
		MaxRedemptions: d.MaxRedemptions,
		Active:         d.Active,
	}

	if code.Code == "" {
		return domain.DiscountCode{}, errors.New("code is required")
	}
	switch code.Type {
	case domain.DiscountTypePercent:
		if code.Percent < 1 || code.Percent > 100 {
			return domain.DiscountCode{}, errors.New("percent must be between 1 and 100")
		}
	case domain.DiscountTypeFixed:
		if code.AmountCents <= 0 {
			return domain.DiscountCode{}, errors.New("amount_cents must be positive")
		}
	default:
		return domain.DiscountCode{}, fmt.Errorf("unknown discount type %q", d.Type)
	}
	return code, nil
}
