package reconcile_appointments

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Sweeper автоматически отменяет записи, оставшиеся в SCHEDULED после своего времени
type Sweeper struct {
	tenantRepo      TenantRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	observer        SweepObserver
	options         Options
	timeProvider    TimeProvider
	logger          Logger

	// Не допускает параллельных прогонов в пределах процесса
	runLock sync.Mutex
}

// NewSweeper создает новый экземпляр сверки
// observer может быть nil, если метрики отключены
func NewSweeper(
	tenantRepo TenantRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	observer SweepObserver,
	options Options,
	logger Logger,
) *Sweeper {
	defaults := DefaultOptions()
	if options.GracePeriod <= 0 {
		options.GracePeriod = defaults.GracePeriod
	}
	if options.LookbackMonths <= 0 {
		options.LookbackMonths = defaults.LookbackMonths
	}
	if options.BatchSize <= 0 {
		options.BatchSize = defaults.BatchSize
	}

	return &Sweeper{
		tenantRepo:      tenantRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		observer:        observer,
		options:         options,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Run запускает прогон сразу и затем с интервалом interval до отмены ctx
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ReconcileAppointments: loop stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("ReconcileAppointments: run failed: %v", err)
	}
}

// RunOnce выполняет один прогон по всем активным арендаторам
// Ошибка одного арендатора логируется и не прерывает прогон
func (s *Sweeper) RunOnce(ctx context.Context) (report *Report, err error) {
	if !s.runLock.TryLock() {
		s.logger.Warn("ReconcileAppointments: previous run is still in progress")
		return nil, ErrSweepInProgress
	}
	defer s.runLock.Unlock()

	now := s.timeProvider.Now()
	report = &Report{
		StartedAt:       now,
		WindowFrom:      now.AddDate(0, -s.options.LookbackMonths, 0),
		WindowTo:        now.Add(-s.options.GracePeriod),
		FailedTenantIDs: []int64{},
	}

	defer func() {
		report.FinishedAt = s.timeProvider.Now()
		if s.observer != nil {
			s.observer.ObserveSweep(int(report.Cancelled), report.TenantsFailed,
				report.FinishedAt.Sub(report.StartedAt), err)
		}
	}()

	s.logger.Info("ReconcileAppointments: window (%s, %s]",
		report.WindowFrom.Format(time.RFC3339), report.WindowTo.Format(time.RFC3339))

	tenants, err := s.tenantRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ReconcileAppointments: failed to list tenants: %v", err)
		return report, fmt.Errorf("%w: failed to list tenants: %v", ErrInternal, err)
	}

	for _, tenant := range tenants {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("ReconcileAppointments: interrupted after %d tenants", report.TenantsProcessed)
			return report, err
		}

		cancelled, err := s.sweepTenant(ctx, tenant.ID, report.WindowFrom, report.WindowTo, now)
		report.Cancelled += cancelled
		if err != nil {
			s.logger.Error("ReconcileAppointments: tenant=%d failed: %v", tenant.ID, err)
			report.TenantsFailed++
			report.FailedTenantIDs = append(report.FailedTenantIDs, tenant.ID)
			continue
		}
		report.TenantsProcessed++
	}

	s.logger.Info("ReconcileAppointments: cancelled %d appointments, tenants ok=%d failed=%d",
		report.Cancelled, report.TenantsProcessed, report.TenantsFailed)

	return report, nil
}

// sweepTenant отменяет устаревшие записи арендатора пачками, каждая пачка в своей транзакции
func (s *Sweeper) sweepTenant(ctx context.Context, tenantID int64, after, notAfter, now time.Time) (int64, error) {
	ids, err := s.appointmentRepo.FindStaleIDs(ctx, tenantID, after, notAfter)
	if err != nil {
		return 0, fmt.Errorf("find stale appointments: %w", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	var total int64
	for _, batch := range chunk(ids, s.options.BatchSize) {
		var affected int64
		err := s.txManager.Do(ctx, func(txCtx context.Context) error {
			n, err := s.appointmentRepo.CancelStale(txCtx, tenantID, batch, now)
			affected = n
			return err
		})
		if err != nil {
			return total, fmt.Errorf("cancel batch of %d: %w", len(batch), err)
		}

		// Записи, измененные вручную после выборки, не отменяются
		if skipped := int64(len(batch)) - affected; skipped > 0 {
			s.logger.Info("ReconcileAppointments: tenant=%d, %d appointments changed concurrently", tenantID, skipped)
		}
		total += affected
	}

	s.logger.Info("ReconcileAppointments: tenant=%d cancelled %d of %d stale appointments", tenantID, total, len(ids))
	return total, nil
}

// chunk делит ids на части не больше size
func chunk(ids []int64, size int) [][]int64 {
	batches := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
