package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	directoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/directory"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	tenantRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/tenant"
	reconcileUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reconcile_appointments"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// app общие зависимости команд serve и sweep
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	location *time.Location
	metrics  *metrics.Metrics // nil, если метрики отключены

	db          *sql.DB
	wrappedDB   *dbmetrics.DB
	stopMetrics chan struct{}

	appointments *appointmentRepo.Repository
	catalog      *catalogRepo.Repository
	directory    *directoryRepo.Repository
	schedule     *scheduleRepo.Repository
	tenants      *tenantRepo.Repository
	txManager    *txmanager.TransactionManager
}

// newApp загружает конфигурацию, поднимает логгер, метрики и подключение к БД
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Scheduling.Timezone, err)
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		location:    location,
		stopMetrics: make(chan struct{}),
	}

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		log.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	a.db = db
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if a.metrics != nil {
		a.wrappedDB = dbmetrics.WrapWithDefault(db, a.metrics, a.stopMetrics)
		log.Info("Database metrics collection started")
	} else {
		a.wrappedDB = dbmetrics.Wrap(db, nil)
	}

	a.appointments = appointmentRepo.NewRepository(a.wrappedDB)
	a.catalog = catalogRepo.NewRepository(a.wrappedDB)
	a.directory = directoryRepo.NewRepository(a.wrappedDB)
	a.schedule = scheduleRepo.NewRepository(a.wrappedDB)
	a.tenants = tenantRepo.NewRepository(a.wrappedDB)
	a.txManager = txmanager.NewTransactionManager(a.wrappedDB)

	return a, nil
}

// newSweeper собирает сверку просроченных записей из настроек reconciliation
func (a *app) newSweeper() *reconcileUC.Sweeper {
	var observer reconcileUC.SweepObserver
	if a.metrics != nil {
		observer = a.metrics
	}

	rc := a.cfg.Reconciliation
	return reconcileUC.NewSweeper(
		a.tenants,
		a.appointments,
		a.txManager,
		observer,
		reconcileUC.Options{
			GracePeriod:    rc.GracePeriod.Duration,
			LookbackMonths: rc.LookbackMonths,
			BatchSize:      rc.BatchSize,
		},
		a.log.With("component", "reconciliation"),
	)
}

// close останавливает сбор метрик пула и закрывает БД и логгер
func (a *app) close() {
	close(a.stopMetrics)
	if err := a.db.Close(); err != nil {
		a.log.Error("Failed to close database: %v", err)
	}
	a.log.Info("Resources released")
	a.log.Close()
}
