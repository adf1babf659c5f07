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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAvailabilityHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/create_availability"
	createReservationHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/get_reservation"
	listAvailabilitiesHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/list_availabilities"
	listReservationsHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/list_reservations"
	"github.com/m04kA/SMC-TutorBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TutorBooking/internal/config"
	userServiceClient "github.com/m04kA/SMC-TutorBooking/internal/integrations/userservice"
	availabilityService "github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-TutorBooking/internal/service/reservations"
	createAvailabilityUC "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_availability"
	reserveSlotUC "github.com/m04kA/SMC-TutorBooking/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
	"github.com/m04kA/SMC-TutorBooking/pkg/metrics"
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

	log.Info("Starting SMC-TutorBooking...")
	log.Info("Configuration loaded from config.toml (driver=%s)", cfg.Database.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL или in-memory
	store, err := openStorage(cfg, metricsCollector, log, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error("Failed to close storage: %v", err)
		}
	}()

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(store.slots, userClient, store.txManager, log)
	reservationsSvc := reservationsService.NewService(store.reservations, userClient, store.txManager, log)

	// Инициализируем use cases
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(
		store.slots,
		userClient,
		store.txManager,
		metricsCollector,
		cfg.Booking.MaxSlotDurationMinutes,
		cfg.Booking.MaxSlotsPerRequest,
		log,
	)

	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		store.slots,
		store.reservations,
		userClient,
		store.txManager,
		metricsCollector,
		cfg.Booking.MaxDescriptionLength,
		log,
	)

	// Инициализируем handlers
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	listAvailabilities := listAvailabilitiesHandler.NewHandler(availabilitySvc, log)
	createReservation := createReservationHandler.NewHandler(reserveSlotUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты инструктора в окне
	api.HandleFunc("/instructors/{username}/availabilities", listAvailabilities.Handle).Methods(http.MethodGet)

	// Бронь по ID
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Name header, {username} должен совпадать)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth, middleware.SameUser)

	// Генерация слотов доступности инструктора
	protected.HandleFunc("/instructors/{username}/availabilities", createAvailability.Handle).Methods(http.MethodPost)

	// Бронирование слота студентом
	protected.HandleFunc("/students/{username}/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Брони пользователя в окне
	protected.HandleFunc("/users/{username}/reservations", listReservations.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
