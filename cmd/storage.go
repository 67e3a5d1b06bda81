package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/config"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/customer"
	discountRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/discount"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/memory"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
)

type slotStore interface {
	InsertIfAbsent(ctx context.Context, slot *domain.Slot) (bool, error)
	GetByID(ctx context.Context, partnerID, id int64) (*domain.Slot, error)
	GetByStartTime(ctx context.Context, partnerID int64, start time.Time) (*domain.Slot, error)
	ListByRange(ctx context.Context, partnerID int64, from, to time.Time) ([]*domain.Slot, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.SlotStatus) (*domain.Slot, error)
	DeleteUnbooked(ctx context.Context, partnerID int64, ids []int64) ([]int64, error)
}

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePricing(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
}

type customerStore interface {
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

type partnerStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
}

type discountStore interface {
	FindByCode(ctx context.Context, code string) ([]*domain.DiscountCode, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев и менеджер транзакций выбранного хранилища
type storage struct {
	slots     slotStore
	bookings  bookingStore
	customers customerStore
	partners  partnerStore
	discounts discountStore
	txManager txManager
	close     func()
}

// openPostgres подключается к PostgreSQL. Если метрики включены, соединение оборачивается dbmetrics
func openPostgres(cfg *config.Config, metricsCollector *metrics.Metrics, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		slots:     slotRepo.NewRepository(wrappedDB),
		bookings:  bookingRepo.NewRepository(wrappedDB),
		customers: customerRepo.NewRepository(wrappedDB),
		partners:  partnerRepo.NewRepository(wrappedDB),
		discounts: discountRepo.NewRepository(wrappedDB),
		txManager: txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			close(stopMetricsCh)
			db.Close()
		},
	}, nil
}

// openMemory создает хранилище в памяти и заполняет его данными из секции [seed]
func openMemory(cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := memory.NewStore()

	for _, p := range cfg.Seed.Partners {
		partner, err := p.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("seed partner id=%d: %w", p.ID, err)
		}
		store.PutPartner(partner)
	}
	for _, d := range cfg.Seed.DiscountCodes {
		code, err := d.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("seed discount code %q: %w", d.Code, err)
		}
		store.PutDiscountCode(code)
	}
	log.Info("In-memory storage initialized (partners=%d, discountCodes=%d)",
		len(cfg.Seed.Partners), len(cfg.Seed.DiscountCodes))

	return &storage{
		slots:     store.Slots(),
		bookings:  store.Bookings(),
		customers: store.Customers(),
		partners:  store.Partners(),
		discounts: store.Discounts(),
		txManager: store,
		close:     func() {},
	}, nil
}
