package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TutorBooking/internal/config"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/slot"
	availabilityService "github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	reservationsService "github.com/m04kA/SMC-TutorBooking/internal/service/reservations"
	createAvailabilityUC "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_availability"
	reserveSlotUC "github.com/m04kA/SMC-TutorBooking/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-TutorBooking/migrations"
	"github.com/m04kA/SMC-TutorBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
	"github.com/m04kA/SMC-TutorBooking/pkg/metrics"
	"github.com/m04kA/SMC-TutorBooking/pkg/migrator"
	"github.com/m04kA/SMC-TutorBooking/pkg/txmanager"
)

type slotStore interface {
	createAvailabilityUC.SlotRepository
	reserveSlotUC.SlotRepository
	availabilityService.SlotRepository
}

type reservationStore interface {
	reserveSlotUC.ReservationRepository
	reservationsService.ReservationRepository
}

type txManager interface {
	createAvailabilityUC.TransactionManager
	reserveSlotUC.TransactionManager
	availabilityService.TransactionManager
	reservationsService.TransactionManager
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	slots        slotStore
	reservations reservationStore
	txManager    txManager
	close        func() error
}

// openStorage создает хранилище по cfg.Database.Driver
func openStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger, stopCh <-chan struct{}) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Info("Using in-memory storage, data will be lost on restart")
		return &storage{
			slots:        store.Slots(),
			reservations: store.Reservations(),
			txManager:    store.TxManager(),
			close:        func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		mig, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init migrator: %w", err)
		}
		if err := mig.Up(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	// Без метрик обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &storage{
		slots:        slotRepo.NewRepository(wrappedDB),
		reservations: reservationRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		close:        db.Close,
	}, nil
}
