package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	directoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/directory"
)

// UseCase use case для расчета слотов записи на услугу
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	catalog         ServiceCatalog
	directory       Directory
	txManager       TransactionManager
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// loc задает часовой пояс, в котором интерпретируются даты и блоки расписания
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	catalog ServiceCatalog,
	directory Directory,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		directory:       directory,
		txManager:       txManager,
		location:        loc,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
// Возвращаются все кандидаты дня, занятые помечены Available=false
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу (длительность определяет размер слота)
	service, err := uc.catalog.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in tenant=%d", req.ServiceID, req.TenantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DurationMinutes <= 0 {
		uc.logger.Error("GetAvailableSlots: service id=%d has non-positive duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service id=%d has invalid duration", ErrInternal, service.ID)
	}

	// 3. Проверяем фильтры
	if err := uc.checkFilters(ctx, req); err != nil {
		return nil, err
	}

	date := dateIn(req.Date, uc.location)
	response := &Response{
		Date:            date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.Slot{},
	}

	// 4-5. Расписание и записи читаются из одного снимка
	var days []*employeeDay
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		days, err = uc.loadDays(txCtx, req, date)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: read transaction failed: %v", err)
		return nil, fmt.Errorf("%w: read transaction failed: %v", ErrInternal, err)
	}

	if len(days) == 0 {
		uc.logger.Info("GetAvailableSlots: no working hours on %s", date.Format(domain.DateFormat))
		return response, nil
	}

	// 6. Генерируем слоты и помечаем занятые
	for _, day := range days {
		response.Slots = append(response.Slots, generateSlots(day, date, uc.location, service.DurationMinutes)...)
	}
	sortSlots(response.Slots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for %d employees", len(response.Slots), len(days))

	return response, nil
}

// loadDays получает блоки расписания на день недели и блокирующие записи каждого сотрудника за день
func (uc *UseCase) loadDays(ctx context.Context, req *Request, date time.Time) ([]*employeeDay, error) {
	blocks, err := uc.scheduleRepo.ListBlocks(ctx, domain.ScheduleFilter{
		TenantID:   req.TenantID,
		Weekday:    domain.ISOWeekday(date),
		LocationID: req.LocationID,
		EmployeeID: req.EmployeeID,
		BlockTypes: []domain.BlockType{domain.BlockWorkingHours, domain.BlockBreak, domain.BlockVacation},
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list schedule blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list schedule blocks: %v", ErrInternal, err)
	}

	days := groupBlocks(blocks, date, uc.location)

	dayStart, dayEnd := domain.DayBounds(date, uc.location)
	for _, day := range days {
		appointments, err := uc.appointmentRepo.ListByEmployee(ctx, domain.EmployeeDayFilter{
			TenantID:     req.TenantID,
			EmployeeID:   day.employeeID,
			From:         dayStart,
			To:           dayEnd,
			OnlyBlocking: true,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list appointments of employee=%d: %v", day.employeeID, err)
			return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}
		day.appointments = appointments
	}

	return days, nil
}

// checkFilters проверяет существование локации и сотрудника из фильтров
func (uc *UseCase) checkFilters(ctx context.Context, req *Request) error {
	if req.LocationID != nil {
		if _, err := uc.directory.GetLocation(ctx, req.TenantID, *req.LocationID); err != nil {
			if errors.Is(err, directoryRepo.ErrLocationNotFound) {
				uc.logger.Warn("GetAvailableSlots: location id=%d not found in tenant=%d", *req.LocationID, req.TenantID)
				return ErrLocationNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get location id=%d: %v", *req.LocationID, err)
			return fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
		}
	}

	if req.EmployeeID != nil {
		if _, err := uc.directory.GetEmployee(ctx, req.TenantID, *req.EmployeeID); err != nil {
			if errors.Is(err, directoryRepo.ErrEmployeeNotFound) {
				uc.logger.Warn("GetAvailableSlots: employee id=%d not found in tenant=%d", *req.EmployeeID, req.TenantID)
				return ErrEmployeeNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
	}

	return nil
}

// dateIn приводит календарную дату к полуночи в указанной локации
func dateIn(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
