package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/get_booking"
	getTenantBookingsHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/get_tenant_bookings"
	markNoShowHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/mark_no_show"
	rescheduleBookingHandler "github.com/coloradodev/cronos-booking/internal/api/handlers/reschedule_booking"
	"github.com/coloradodev/cronos-booking/internal/api/middleware"
	"github.com/coloradodev/cronos-booking/internal/config"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
	bookingRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/booking"
	hoursRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/hours"
	policyRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/policy"
	directoryClient "github.com/coloradodev/cronos-booking/internal/integrations/directory"
	availabilityService "github.com/coloradodev/cronos-booking/internal/service/availability"
	bookingsService "github.com/coloradodev/cronos-booking/internal/service/bookings"
	calendarService "github.com/coloradodev/cronos-booking/internal/service/calendar"
	createBookingUC "github.com/coloradodev/cronos-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/coloradodev/cronos-booking/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/coloradodev/cronos-booking/internal/usecase/reschedule_booking"
	"github.com/coloradodev/cronos-booking/pkg/dbmetrics"
	"github.com/coloradodev/cronos-booking/pkg/logger"
	"github.com/coloradodev/cronos-booking/pkg/metrics"
	"github.com/coloradodev/cronos-booking/pkg/simpletxmanager"
	"github.com/coloradodev/cronos-booking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting cronos-booking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции (если включено)
	if cfg.Database.Migrate {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, cfg.Database.MigrationsPath); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied (path=%s)", cfg.Database.MigrationsPath)
	}

	// Инициализируем клиент справочника услуг и сотрудников
	dirClient := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	// Инициализируем публикацию событий
	var publisher events.Publisher
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		publisher = events.NewNoopPublisher()
		log.Info("Event publishing disabled")
	}
	defer publisher.Close()

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		hoursRepository   *hoursRepo.Repository
		policyRepository  *policyRepo.Repository
	)

	// Общий интерфейс для обоих менеджеров транзакций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		hoursRepository = hoursRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		hoursRepository = hoursRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(hoursRepository, log)
	availabilityEngine := availabilityService.NewEngine(
		calendarSvc,
		bookingRepository,
		dirClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		policyRepository,
		dirClient,
		availabilityEngine,
		calendarSvc,
		txMgr,
		publisher,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		dirClient,
		calendarSvc,
		txMgr,
		publisher,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilityEngine, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	// Список свободных слотов на дату
	api.HandleFunc("/tenants/{tenantId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/tenants/{tenantId}/bookings",
		createBooking.Handle).Methods(http.MethodPost)

	// Список бронирований тенанта
	api.HandleFunc("/tenants/{tenantId}/bookings",
		getTenantBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/tenants/{tenantId}/bookings/{bookingId}",
		getBooking.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла бронирования
	api.HandleFunc("/tenants/{tenantId}/bookings/{bookingId}/confirm",
		confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{tenantId}/bookings/{bookingId}/cancel",
		cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{tenantId}/bookings/{bookingId}/reschedule",
		rescheduleBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tenants/{tenantId}/bookings/{bookingId}/no-show",
		markNoShow.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
