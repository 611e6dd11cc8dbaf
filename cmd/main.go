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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/check_availability"
	confirmReservationHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/confirm_reservation"
	getAvailableSlotsHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/get_available_slots"
	getCustomerReservationsHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/get_customer_reservations"
	getReservationHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/get_reservation"
	modifyReservationHandler "github.com/m04kA/POS-ReservationService/internal/api/handlers/modify_reservation"
	"github.com/m04kA/POS-ReservationService/internal/api/middleware"
	"github.com/m04kA/POS-ReservationService/internal/authz"
	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/config"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
	"github.com/m04kA/POS-ReservationService/internal/jobs"
	reservationsService "github.com/m04kA/POS-ReservationService/internal/service/reservations"
	cancelReservationUC "github.com/m04kA/POS-ReservationService/internal/usecase/cancel_reservation"
	checkAvailabilityUC "github.com/m04kA/POS-ReservationService/internal/usecase/check_availability"
	confirmReservationUC "github.com/m04kA/POS-ReservationService/internal/usecase/confirm_reservation"
	getAvailableSlotsUC "github.com/m04kA/POS-ReservationService/internal/usecase/get_available_slots"
	modifyReservationUC "github.com/m04kA/POS-ReservationService/internal/usecase/modify_reservation"
	"github.com/m04kA/POS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/POS-ReservationService/pkg/keymutex"
	"github.com/m04kA/POS-ReservationService/pkg/logger"
	"github.com/m04kA/POS-ReservationService/pkg/metrics"
	"github.com/m04kA/POS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/POS-ReservationService/pkg/txmanager"
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

	log.Info("Starting POS-ReservationService...")
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

	// Инициализируем клиента CatalogService
	catalog := catalogClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Проверка доступности: часы работы, пересечения, график сотрудников
	hours := availability.NewHourWindow(cfg.Booking.OpenHour, cfg.Booking.CloseHour)
	checker := availability.NewChecker(
		catalog,
		scheduleRepository,
		reservationRepository,
		hours,
		log,
	)

	// Блокировки ресурсов: календарь сотрудника или таймлайн услуги
	locks := keymutex.New()

	limits := confirmReservationUC.Limits{
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		MinNoticeMinutes:   cfg.Booking.MinBookingNoticeMinutes,
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, log)

	// Инициализируем use cases
	confirmReservationUseCase := confirmReservationUC.NewUseCase(
		reservationRepository,
		checker,
		catalog,
		locks,
		txMgr,
		limits,
		log,
	)
	modifyReservationUseCase := modifyReservationUC.NewUseCase(
		reservationRepository,
		checker,
		locks,
		txMgr,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		locks,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		checker,
		getAvailableSlotsUC.Grid{
			Hours:              hours,
			GranularityMinutes: cfg.Booking.SlotGranularityMinutes,
			MinNoticeMinutes:   cfg.Booking.MinBookingNoticeMinutes,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
		},
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(checker, log)

	// Инициализируем handlers
	confirmReservation := confirmReservationHandler.NewHandler(confirmReservationUseCase, log)
	modifyReservation := modifyReservationHandler.NewHandler(modifyReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationsSvc, log)

	// Фоновая очистка протухших pending бронирований. Сам сервис создает
	// записи сразу в confirmed; pending появляются от внешних писателей
	// (импорт, POS-терминалы), пишущих в таблицу через DEFAULT 'pending'.
	// TTL освобождает их интервалы, если подтверждение так и не пришло.
	sweeper := jobs.NewSweeper(
		reservationRepository,
		cfg.Booking.PendingTTLMinutes,
		cfg.Booking.SweepSchedule,
		log,
	)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start pending sweeper: %v", err)
	}
	log.Info("Pending sweeper started (schedule=%q, ttl=%dm)",
		cfg.Booking.SweepSchedule, cfg.Booking.PendingTTLMinutes)

	// Таблица разрешений: (метод, шаблон маршрута) -> роли.
	// Строится один раз при старте и дальше не изменяется.
	permissions := authz.NewTable([]authz.Rule{
		{Method: http.MethodPost, Route: "/api/v1/reservations",
			Roles: []authz.Role{authz.RoleCustomer, authz.RoleManager, authz.RoleAdmin}},
		{Method: http.MethodGet, Route: "/api/v1/reservations/{reservationId}",
			Roles: []authz.Role{authz.RoleCustomer, authz.RoleManager, authz.RoleAdmin}},
		{Method: http.MethodPatch, Route: "/api/v1/reservations/{reservationId}",
			Roles: []authz.Role{authz.RoleCustomer, authz.RoleManager, authz.RoleAdmin}},
		{Method: http.MethodPatch, Route: "/api/v1/reservations/{reservationId}/cancel",
			Roles: []authz.Role{authz.RoleCustomer, authz.RoleManager, authz.RoleAdmin}},
		{Method: http.MethodGet, Route: "/api/v1/customers/{customerId}/reservations",
			Roles: []authz.Role{authz.RoleManager, authz.RoleAdmin}},
	})

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для бронирования
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка доступности кандидата без записи
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.Authorize(permissions))

	// --- Бронирования ---
	// Подтверждение бронирования (check-then-commit)
	protected.HandleFunc("/reservations", confirmReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перенос бронирования на новое время
	protected.HandleFunc("/reservations/{reservationId}", modifyReservation.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновую очистку
	sweeper.Stop()
	log.Info("Pending sweeper stopped")

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
