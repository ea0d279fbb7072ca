package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calculatePriceHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/calculate_price"
	calculateQuoteHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/calculate_quote"
	cancelBookingHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_available_dates"
	getBookingHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_customer_bookings"
	getRatesHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_rates"
	getRatesHistoryHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/get_rates_history"
	healthHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/update_booking_status"
	updateRatesHandler "github.com/m04kA/SMC-MovingService/internal/api/handlers/update_rates"
	"github.com/m04kA/SMC-MovingService/internal/api/middleware"
	"github.com/m04kA/SMC-MovingService/internal/config"
	"github.com/m04kA/SMC-MovingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/customer"
	ratesRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/rates"
	"github.com/m04kA/SMC-MovingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-MovingService/internal/service/bookings"
	ratesService "github.com/m04kA/SMC-MovingService/internal/service/rates"
	calculatePriceUC "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_price"
	calculateQuoteUC "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_quote"
	createBookingUC "github.com/m04kA/SMC-MovingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MovingService/pkg/fieldcrypt"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/metrics"
	"github.com/m04kA/SMC-MovingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-MovingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены); nil коллектор отключает запись
	var metricsCollector *metrics.Metrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Шифрование адресов в БД
	var cipher bookingRepo.FieldCipher = fieldcrypt.Plain{}
	if cfg.Security.FieldEncryptionKey != "" {
		c, err := fieldcrypt.New(cfg.Security.FieldEncryptionKey)
		if err != nil {
			log.Fatal("Failed to initialize field encryption: %v", err)
		}
		cipher = c
		log.Info("Address encryption enabled")
	} else {
		log.Warn("security.field_encryption_key is empty, addresses are stored in plain text")
	}

	healthChecks := map[string]healthHandler.Pinger{"database": wrappedDB}

	// Redis для подавления повторных заявок (опционально)
	var duplicateGuard createBookingUC.DuplicateGuard
	if cfg.Redis.Enabled {
		rdb, err := cache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		guard := cache.NewSubmissionGuard(rdb)
		duplicateGuard = guard
		healthChecks["redis"] = healthHandler.PingerFunc(guard.Ping)
		log.Info("Duplicate submission guard enabled (redis=%s, window=%ds)",
			cfg.Redis.Addr, cfg.Booking.DuplicateWindowSeconds)
	}

	// Сервис уведомлений (опционально)
	var bookingNotifier createBookingUC.Notifier
	if cfg.Notifications.Enabled {
		bookingNotifier = notifier.NewClient(
			cfg.Notifications.URL,
			time.Duration(cfg.Notifications.Timeout)*time.Second,
			log,
		)
		log.Info("Notification client initialized (url=%s, timeout=%ds)",
			cfg.Notifications.URL, cfg.Notifications.Timeout)
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, cipher)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	ratesRepository := ratesRepo.NewRepository(wrappedDB)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, customerRepository, log)
	ratesSvc := ratesService.NewService(ratesRepository, txMgr, cfg.Pricing.RateTable(), log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		ratesSvc,
		duplicateGuard,
		bookingNotifier,
		metricsCollector,
		txMgr,
		createBookingUC.Options{
			DailyCapacity:      cfg.Booking.DailyCapacity,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			DuplicateWindow:    time.Duration(cfg.Booking.DuplicateWindowSeconds) * time.Second,
		},
		log,
	)
	calculatePriceUseCase := calculatePriceUC.NewUseCase(ratesSvc, metricsCollector, log)
	calculateQuoteUseCase := calculateQuoteUC.NewUseCase(cfg.Quote.QuoteRates(), metricsCollector, log)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		bookingRepository,
		getAvailableDatesUC.Options{
			DailyCapacity:      cfg.Booking.DailyCapacity,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		},
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	calculateQuote := calculateQuoteHandler.NewHandler(calculateQuoteUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getRates := getRatesHandler.NewHandler(ratesSvc, log)
	getRatesHistory := getRatesHistoryHandler.NewHandler(ratesSvc, log)
	updateRates := updateRatesHandler.NewHandler(ratesSvc, log)
	health := healthHandler.NewHandler(healthChecks, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTL)*time.Second,
			cfg.RateLimit.TrustProxy,
			log,
		)
		api.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Расчет стоимости ---
	api.HandleFunc("/price-estimates", calculatePrice.Handle).Methods(http.MethodPost)
	api.HandleFunc("/quotes", calculateQuote.Handle).Methods(http.MethodPost)

	// --- Заявки на переезд ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Загрузка бригад ---
	api.HandleFunc("/availability", getAvailableDates.Handle).Methods(http.MethodGet)

	// --- Тарифы ---
	api.HandleFunc("/pricing/rates", getRates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pricing/rates", updateRates.Handle).Methods(http.MethodPut)
	api.HandleFunc("/pricing/rates/history", getRatesHistory.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
