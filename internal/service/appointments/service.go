package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	directoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/directory"
	tenantRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
type Service struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	directory       Directory
	txManager       TransactionManager
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// loc задает часовой пояс, в котором интерпретируются календарные даты
func NewService(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	directory Directory,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		directory:       directory,
		txManager:       txManager,
		location:        loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись арендатора по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for tenant=%d", id, tenantID)

	appointment, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListEmployeeAppointments получает все записи сотрудника за календарный день, включая отмененные
func (s *Service) ListEmployeeAppointments(ctx context.Context, req *models.ListEmployeeAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListEmployeeAppointments: tenant=%d, employee=%d, date=%s",
		req.TenantID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	if req.EmployeeID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: employeeID and date are required", ErrInvalidInput)
	}

	if _, err := s.directory.GetEmployee(ctx, req.TenantID, req.EmployeeID); err != nil {
		if errors.Is(err, directoryRepo.ErrEmployeeNotFound) {
			s.logger.Warn("ListEmployeeAppointments: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("ListEmployeeAppointments: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListEmployeeAppointments - directory error: %v", ErrInternal, err)
	}

	from, to := domain.DayBounds(req.Date, s.location)
	list, err := s.appointmentRepo.ListByEmployee(ctx, domain.EmployeeDayFilter{
		TenantID:   req.TenantID,
		EmployeeID: req.EmployeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		s.logger.Error("ListEmployeeAppointments: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListEmployeeAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListEmployeeAppointments: fetched %d appointments for employee=%d", len(list), req.EmployeeID)
	return models.FromDomainAppointmentList(list), nil
}

// Update меняет статус и/или время записи
// Перенос SCHEDULED разрешен не ближе окна переноса к текущему началу, отмененные переносятся без проверок,
// новое время проверяется на пересечения с другими записями сотрудника.
// Повторная отправка того же запроса не меняет состояние записи
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: appointment id=%d, tenant=%d, status=%s", id, req.TenantID, req.Status)

	status, err := validateUpdateRequest(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%d: %v", id, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	var result *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Загружаем запись с блокировкой строки
		appointment, err := s.appointmentRepo.GetByID(txCtx, req.TenantID, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Update: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			if appointmentRepo.IsConflictError(err) {
				s.logger.Warn("Update: appointment id=%d is locked by a concurrent change: %v", id, err)
				return ErrSlotConflict
			}
			s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - get appointment: %v", ErrInternal, err)
		}

		if req.StartTime != nil && !req.StartTime.Equal(appointment.StartTime) {
			if err := s.reschedule(txCtx, appointment, *req.StartTime, now); err != nil {
				return err
			}
		}

		if !appointment.Status.CanTransitionTo(status) {
			s.logger.Warn("Update: transition %s -> %s is not allowed for appointment id=%d",
				appointment.Status, status, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, status)
		}

		// Дата выполнения фиксируется только при первом переходе в FULFILLED
		if status == domain.StatusFulfilled && appointment.Status != domain.StatusFulfilled {
			fulfilledAt := now
			appointment.FulfillmentDate = &fulfilledAt
		}
		appointment.Status = status

		if req.CanceledBy != nil {
			appointment.CanceledBy = req.CanceledBy
		}
		if req.CancelReason != nil {
			appointment.CancelReason = req.CancelReason
		}

		updated, err := s.appointmentRepo.Update(txCtx, appointment)
		if err != nil {
			if appointmentRepo.IsConflictError(err) {
				s.logger.Warn("Update: storage rejected appointment id=%d: %v", id, err)
				return ErrSlotConflict
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Update: failed to save appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - save appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		if appointmentRepo.IsConflictError(err) {
			s.logger.Warn("Update: serialization conflict on commit for appointment id=%d: %v", id, err)
			return nil, ErrSlotConflict
		}
		s.logger.Error("Update: transaction failed for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Update: appointment id=%d is %s, start=%s", id, result.Status, result.StartTime.Format(time.RFC3339))
	return models.FromDomainAppointment(result), nil
}

// reschedule переносит запись на newStart, проверяя окно переноса и пересечения
// Отмененная запись время не занимает, поэтому переносится без проверок
func (s *Service) reschedule(ctx context.Context, appointment *domain.Appointment, newStart, now time.Time) error {
	if appointment.Status == domain.StatusCancelled {
		moveTo(appointment, newStart)
		return nil
	}

	if appointment.Status != domain.StatusScheduled {
		s.logger.Warn("Update: appointment id=%d in status %s cannot be rescheduled", appointment.ID, appointment.Status)
		return ErrRescheduleNotAllowed
	}

	settings, err := s.settings(ctx, appointment.TenantID)
	if err != nil {
		return err
	}

	// Окно считается от текущего, а не от нового времени начала
	window := settings.RescheduleWindow()
	if appointment.StartTime.Sub(now) < window {
		s.logger.Warn("Update: appointment id=%d starts at %s, reschedule window is %s",
			appointment.ID, appointment.StartTime.Format(time.RFC3339), window)
		return ErrRescheduleWindow
	}

	if !newStart.After(now) {
		return ErrStartInPast
	}

	newEnd := newStart.Add(time.Duration(appointment.DurationMinutes) * time.Minute)
	existing, err := s.appointmentRepo.ListByEmployee(ctx, domain.EmployeeDayFilter{
		TenantID:     appointment.TenantID,
		EmployeeID:   appointment.EmployeeID,
		From:         newStart,
		To:           newEnd,
		OnlyBlocking: true,
		ExcludeID:    &appointment.ID,
	})
	if err != nil {
		if appointmentRepo.IsConflictError(err) {
			s.logger.Warn("Update: concurrent change of employee=%d schedule: %v", appointment.EmployeeID, err)
			return ErrSlotConflict
		}
		s.logger.Error("Update: failed to list appointments of employee=%d: %v", appointment.EmployeeID, err)
		return fmt.Errorf("%w: Update - list appointments: %v", ErrInternal, err)
	}

	if other := domain.FindOverlap(existing, newStart, newEnd, appointment.ID); other != nil {
		s.logger.Warn("Update: new time of appointment id=%d overlaps appointment id=%d", appointment.ID, other.ID)
		return ErrSlotConflict
	}

	moveTo(appointment, newStart)
	return nil
}

// moveTo сдвигает запись на newStart, сохраняя длительность
func moveTo(appointment *domain.Appointment, newStart time.Time) {
	appointment.StartTime = newStart
	appointment.EndTime = newStart.Add(time.Duration(appointment.DurationMinutes) * time.Minute)
}

// settings получает настройки арендатора, отсутствие настроек означает значения по умолчанию
func (s *Service) settings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, tenantID)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, tenantRepo.ErrSettingsNotFound) {
		return domain.DefaultTenantSettings(tenantID), nil
	}
	s.logger.Error("Update: failed to get settings of tenant=%d: %v", tenantID, err)
	return nil, fmt.Errorf("%w: Update - get settings: %v", ErrInternal, err)
}

// Remove физически удаляет запись
// Разрешено только для отмененных записей или записей, время которых уже наступило
func (s *Service) Remove(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("Remove: appointment id=%d, tenant=%d", id, tenantID)

	now := s.timeProvider.Now()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, tenantID, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Remove: appointment id=%d not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Remove: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Remove - get appointment: %v", ErrInternal, err)
		}

		if !appointment.CanBeDeleted(now) {
			s.logger.Warn("Remove: appointment id=%d is %s and starts at %s", id, appointment.Status,
				appointment.StartTime.Format(time.RFC3339))
			return ErrCannotDelete
		}

		if err := s.appointmentRepo.Delete(txCtx, tenantID, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Remove: failed to delete appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Remove - delete: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if isServiceError(err) {
			return err
		}
		s.logger.Error("Remove: transaction failed for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Remove - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: appointment id=%d deleted", id)
	return nil
}

// validateUpdateRequest валидирует запрос и возвращает целевой статус
func validateUpdateRequest(req *models.UpdateAppointmentRequest) (domain.AppointmentStatus, error) {
	if req.TenantID <= 0 {
		return "", fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	status := domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.StartTime != nil && req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime must not be empty", ErrInvalidInput)
	}

	if req.CancelReason != nil && len(*req.CancelReason) > domain.MaxCancelReasonLen {
		return "", fmt.Errorf("%w: cancelReason is longer than %d", ErrInvalidInput, domain.MaxCancelReasonLen)
	}

	return status, nil
}

// isServiceError проверяет, что ошибка уже приведена к ошибкам сервиса
func isServiceError(err error) bool {
	for _, target := range []error{
		ErrAppointmentNotFound,
		ErrInvalidTransition,
		ErrRescheduleWindow,
		ErrRescheduleNotAllowed,
		ErrStartInPast,
		ErrSlotConflict,
		ErrCannotDelete,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
