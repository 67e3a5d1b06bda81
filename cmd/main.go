package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	applyDiscountHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/apply_discount"
	cancelBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/create_booking"
	createSeriesHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/create_series"
	deleteSlotsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/delete_slots"
	getBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_booking"
	getDayAvailabilityHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_day_availability"
	getMonthAvailabilityHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_month_availability"
	publishSlotHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/publish_slot"
	quoteBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/quote_booking"
	unpublishSlotHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/unpublish_slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/config"
	partnerCache "github.com/m04kA/SMC-SlotBookingService/internal/infra/cache/partner"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	availabilityService "github.com/m04kA/SMC-SlotBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	pricingService "github.com/m04kA/SMC-SlotBookingService/internal/service/pricing"
	slotsService "github.com/m04kA/SMC-SlotBookingService/internal/service/slots"
	applyDiscountUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/apply_discount"
	cancelBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
)

// domainMetrics доменные счетчики, которые используют сервисы и use cases
type domainMetrics interface {
	RecordSlotTransition(transition string, n int)
	RecordReservationConflict()
	RecordDiscountRejected(reason string)
}

// eventPublisher издатель доменных событий
type eventPublisher interface {
	Publish(ctx context.Context, subject string, event interface{}) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SlotBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		slotMetrics      domainMetrics = metrics.Nop{}
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		slotMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store, err = openMemory(cfg, log)
	default:
		store, err = openPostgres(cfg, metricsCollector, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage (driver=%s): %v", cfg.Storage.Driver, err)
	}
	defer store.close()

	// Кэш партнеров в Redis (если включен)
	var partners partnerStore = store.partners
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, partner cache will fall back to storage: %v", cfg.Redis.Addr, err)
		}
		cancel()

		partners = partnerCache.NewCache(store.partners, redisClient, cfg.RedisTTL(), log)
		log.Info("Partner cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.RedisTTL())
	}

	// Публикация событий в NATS (если включена)
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.NATS.Enabled {
		natsPublisher, err := events.Connect(cfg.NATS.URL, cfg.Metrics.ServiceName, cfg.NATS.SubjectPrefix)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		publisher = natsPublisher
		log.Info("Event publishing enabled (url=%s, prefix=%s)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	template, err := cfg.ScheduleTemplate()
	if err != nil {
		log.Fatal("Invalid schedule template: %v", err)
	}
	log.Info("Schedule template: %d slots per day, %d minutes each", template.Size(), template.SlotDurationMinutes)

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(
		store.slots,
		partners,
		store.txManager,
		template,
		slotMetrics,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		store.slots,
		partners,
		store.txManager,
		template,
		cfg.BaselineMode(),
		log,
	)
	pricingSvc := pricingService.NewService(partners, log)
	bookingSvc := bookingsService.NewService(store.bookings, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.slots,
		store.bookings,
		store.customers,
		partners,
		store.txManager,
		publisher,
		slotMetrics,
		log,
	)
	applyDiscountUseCase := applyDiscountUC.NewUseCase(
		store.bookings,
		partners,
		store.discounts,
		store.txManager,
		publisher,
		slotMetrics,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store.bookings,
		store.slots,
		store.txManager,
		publisher,
		slotMetrics,
		cfg.RefundWindow(),
		log,
	)

	// Инициализируем handlers
	createSeries := createSeriesHandler.NewHandler(slotSvc, log)
	publishSlot := publishSlotHandler.NewHandler(slotSvc, log)
	unpublishSlot := unpublishSlotHandler.NewHandler(slotSvc, log)
	deleteSlots := deleteSlotsHandler.NewHandler(slotSvc, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(availabilitySvc, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(availabilitySvc, log)
	quoteBooking := quoteBookingHandler.NewHandler(pricingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	applyDiscount := applyDiscountHandler.NewHandler(applyDiscountUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты (управление партнером) ---
	// Создание серии слотов
	api.HandleFunc("/partners/{partnerId}/slots/series", createSeries.Handle).Methods(http.MethodPost)

	// Публикация слота по времени начала
	api.HandleFunc("/partners/{partnerId}/slots/publish", publishSlot.Handle).Methods(http.MethodPost)

	// Снятие слота с публикации
	api.HandleFunc("/partners/{partnerId}/slots/{slotId}/unpublish", unpublishSlot.Handle).Methods(http.MethodPost)

	// Удаление слотов
	api.HandleFunc("/partners/{partnerId}/slots/delete", deleteSlots.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	api.HandleFunc("/partners/{partnerId}/availability/month", getMonthAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/partners/{partnerId}/availability/day", getDayAvailability.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Расчет стоимости без бронирования
	api.HandleFunc("/partners/{partnerId}/bookings/quote", quoteBooking.Handle).Methods(http.MethodPost)

	// Создание бронирования
	api.HandleFunc("/partners/{partnerId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Применение или снятие промокода
	api.HandleFunc("/bookings/{bookingId}/discount", applyDiscount.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
