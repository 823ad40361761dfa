package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	directoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/directory"
	userClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
)

// Источники конфликта для метрик
const (
	conflictSourceCheck      = "check"
	conflictSourceConstraint = "constraint"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         ServiceCatalog
	directory       Directory
	userClient      UserServiceClient
	txManager       TransactionManager
	conflicts       ConflictRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// conflicts может быть nil, если метрики отключены
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog ServiceCatalog,
	directory Directory,
	userClient UserServiceClient,
	txManager TransactionManager,
	conflicts ConflictRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		directory:       directory,
		userClient:      userClient,
		txManager:       txManager,
		conflicts:       conflicts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%d, user=%d, service=%d, employee=%d, start=%s",
		req.TenantID, req.UserID, req.ServiceID, req.EmployeeID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись в прошлое запрещена
	now := uc.timeProvider.Now()
	if err := validateStartTime(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found in tenant=%d", req.ServiceID, req.TenantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DurationMinutes <= 0 {
		uc.logger.Error("CreateAppointment: service id=%d has non-positive duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service id=%d has invalid duration", ErrInternal, service.ID)
	}

	// 4. Проверяем локацию и сотрудника
	location, employee, err := uc.resolvePlace(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Получаем данные пользователя
	booker, err := uc.resolveBooker(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	end := req.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	var result *domain.Appointment

	// 6. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Блокирующие записи сотрудника, пересекающие интервал (FOR UPDATE)
		existing, err := uc.appointmentRepo.ListByEmployee(txCtx, domain.EmployeeDayFilter{
			TenantID:     req.TenantID,
			EmployeeID:   req.EmployeeID,
			From:         req.StartTime,
			To:           end,
			OnlyBlocking: true,
		})
		if err != nil {
			if appointmentRepo.IsConflictError(err) {
				uc.logger.Warn("CreateAppointment: concurrent change of employee=%d schedule: %v", req.EmployeeID, err)
				uc.recordConflict(conflictSourceConstraint)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 6.2. Проверяем пересечение (касание границ допустимо)
		if other := domain.FindOverlap(existing, req.StartTime, end, 0); other != nil {
			uc.logger.Warn("CreateAppointment: slot overlaps appointment id=%d of employee=%d", other.ID, req.EmployeeID)
			uc.recordConflict(conflictSourceCheck)
			return ErrSlotConflict
		}

		// 6.3. Создаем запись с денормализацией данных
		appointment := &domain.Appointment{
			TenantID:        req.TenantID,
			ServiceID:       service.ID,
			LocationID:      location.ID,
			EmployeeID:      employee.ID,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			EndTime:         end,
			Status:          domain.StatusScheduled,
			BookedByID:      booker.ID,
			BookedBy:        booker.Email,
			BookedByName:    booker.Name,
			ServiceName:     service.Name,
			EmployeeName:    employee.Name,
			LocationName:    location.Name,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if appointmentRepo.IsConflictError(err) {
				uc.logger.Warn("CreateAppointment: storage rejected overlapping appointment: %v", err)
				uc.recordConflict(conflictSourceConstraint)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		// Конфликт сериализации может прийти при commit
		if appointmentRepo.IsConflictError(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict on commit: %v", err)
			uc.recordConflict(conflictSourceConstraint)
			return nil, ErrSlotConflict
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{Appointment: result}, nil
}

// resolvePlace проверяет существование локации и сотрудника у арендатора
func (uc *UseCase) resolvePlace(ctx context.Context, req *Request) (*domain.Location, *domain.Employee, error) {
	location, err := uc.directory.GetLocation(ctx, req.TenantID, req.LocationID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateAppointment: location id=%d not found in tenant=%d", req.LocationID, req.TenantID)
			return nil, nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get location id=%d: %v", req.LocationID, err)
		return nil, nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	employee, err := uc.directory.GetEmployee(ctx, req.TenantID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found in tenant=%d", req.EmployeeID, req.TenantID)
			return nil, nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	return location, employee, nil
}

// resolveBooker получает данные пользователя из UserService
// При недоступности UserService запись создается только с ID пользователя
func (uc *UseCase) resolveBooker(ctx context.Context, userID int64) (*userClient.User, error) {
	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, userClient.ErrUserNotFound) {
		uc.logger.Warn("CreateAppointment: booker id=%d not found", userID)
		return nil, ErrBookerNotFound
	}

	if errors.Is(err, userClient.ErrServiceDegraded) {
		uc.logger.Warn("CreateAppointment: booker id=%d resolved without profile: %v", userID, err)
		return &userClient.User{ID: userID}, nil
	}

	uc.logger.Error("CreateAppointment: failed to get booker id=%d: %v", userID, err)
	return nil, fmt.Errorf("%w: failed to get booker: %v", ErrInternal, err)
}

func (uc *UseCase) recordConflict(source string) {
	if uc.conflicts != nil {
		uc.conflicts.IncBookingConflict(source)
	}
}
