package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	directoryRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/directory"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type snapshotKey struct{}

// fakeTxManager помечает контекст, чтобы фейки видели, что чтение идет внутри транзакции
type fakeTxManager struct {
	calls     int
	commitErr error
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(context.WithValue(ctx, snapshotKey{}, true)); err != nil {
		return err
	}
	return m.commitErr
}

func inSnapshot(ctx context.Context) bool {
	v, _ := ctx.Value(snapshotKey{}).(bool)
	return v
}

type fakeSchedule struct {
	blocks     []*domain.ScheduleBlock
	lastFilter domain.ScheduleFilter
	err        error
	inSnapshot bool
}

func (f *fakeSchedule) ListBlocks(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ScheduleBlock, error) {
	f.lastFilter = filter
	f.inSnapshot = inSnapshot(ctx)
	return f.blocks, f.err
}

type fakeAppointments struct {
	byEmployee map[int64][]*domain.Appointment
	filters    []domain.EmployeeDayFilter
	outside    int
}

func (f *fakeAppointments) ListByEmployee(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Appointment, error) {
	f.filters = append(f.filters, filter)
	if !inSnapshot(ctx) {
		f.outside++
	}
	return f.byEmployee[filter.EmployeeID], nil
}

type fakeCatalog struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeDirectory struct {
	employees map[int64]bool
	locations map[int64]bool
}

func (f *fakeDirectory) GetEmployee(_ context.Context, tenantID, id int64) (*domain.Employee, error) {
	if !f.employees[id] {
		return nil, directoryRepo.ErrEmployeeNotFound
	}
	return &domain.Employee{ID: id, TenantID: tenantID}, nil
}

func (f *fakeDirectory) GetLocation(_ context.Context, tenantID, id int64) (*domain.Location, error) {
	if !f.locations[id] {
		return nil, directoryRepo.ErrLocationNotFound
	}
	return &domain.Location{ID: id, TenantID: tenantID}, nil
}

// monday 2026-10-19
var monday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func block(employeeID int64, start, end string, bt domain.BlockType) *domain.ScheduleBlock {
	return &domain.ScheduleBlock{
		TenantID:     1,
		EmployeeID:   employeeID,
		EmployeeName: "Bob",
		LocationID:   3,
		Weekday:      1,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		BlockType:    bt,
	}
}

func newTestUseCase(schedule *fakeSchedule, appointments *fakeAppointments) *UseCase {
	return newTestUseCaseWithTx(schedule, appointments, &fakeTxManager{})
}

func newTestUseCaseWithTx(schedule *fakeSchedule, appointments *fakeAppointments, tx *fakeTxManager) *UseCase {
	catalog := &fakeCatalog{services: map[int64]*domain.Service{
		7: {ID: 7, TenantID: 1, Name: "Haircut", DurationMinutes: 30},
	}}
	directory := &fakeDirectory{
		employees: map[int64]bool{4: true},
		locations: map[int64]bool{3: true},
	}
	return NewUseCase(schedule, appointments, catalog, directory, tx, time.UTC, nopLogger{})
}

func TestUseCase_Execute_FullDayAllAvailable(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "09:00", "17:00", domain.BlockWorkingHours),
	}}
	uc := newTestUseCase(schedule, &fakeAppointments{})

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 31)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
	assert.Equal(t, types.TimeString("16:30"), resp.Slots[30].Time)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.Time)
		assert.Equal(t, 30, s.DurationMinutes)
	}
	assert.Equal(t, 1, schedule.lastFilter.Weekday)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestUseCase_Execute_ExistingAppointmentBlocksOverlappingSlots(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "09:00", "17:00", domain.BlockWorkingHours),
	}}
	appointments := &fakeAppointments{byEmployee: map[int64][]*domain.Appointment{
		4: {{
			ID:              100,
			EmployeeID:      4,
			StartTime:       monday.Add(10 * time.Hour),
			DurationMinutes: 30,
			EndTime:         monday.Add(10*time.Hour + 30*time.Minute),
			Status:          domain.StatusScheduled,
		}},
	}}
	uc := newTestUseCase(schedule, appointments)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})
	require.NoError(t, err)

	byTime := make(map[types.TimeString]domain.Slot)
	for _, s := range resp.Slots {
		byTime[s.Time] = s
	}

	assert.True(t, byTime["09:30"].Available)
	assert.False(t, byTime["09:45"].Available)
	assert.False(t, byTime["10:00"].Available)
	assert.False(t, byTime["10:15"].Available)
	assert.True(t, byTime["10:30"].Available)

	require.Len(t, appointments.filters, 1)
	assert.True(t, appointments.filters[0].OnlyBlocking)
	assert.Equal(t, monday, appointments.filters[0].From)
	assert.Equal(t, monday.AddDate(0, 0, 1), appointments.filters[0].To)
}

func TestUseCase_Execute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "09:00", "11:00", domain.BlockWorkingHours),
	}}
	appointments := &fakeAppointments{byEmployee: map[int64][]*domain.Appointment{
		4: {{
			StartTime: monday.Add(10 * time.Hour),
			EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
			Status:    domain.StatusCancelled,
		}},
	}}
	uc := newTestUseCase(schedule, appointments)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.Time)
	}
}

func TestUseCase_Execute_BreakMarksSlotsUnavailable(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "09:00", "14:00", domain.BlockWorkingHours),
		block(4, "12:00", "13:00", domain.BlockBreak),
	}}
	uc := newTestUseCase(schedule, &fakeAppointments{})

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		m := s.Time.Minutes()
		inBreak := m+30 > 12*60 && m < 13*60
		assert.Equal(t, !inBreak, s.Available, "slot %s", s.Time)
	}
}

func TestUseCase_Execute_SortsByTimeThenEmployee(t *testing.T) {
	second := block(2, "09:00", "10:00", domain.BlockWorkingHours)
	second.EmployeeName = "Alice"
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "09:00", "10:00", domain.BlockWorkingHours),
		second,
	}}
	uc := newTestUseCase(schedule, &fakeAppointments{})

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	assert.Equal(t, int64(2), resp.Slots[0].EmployeeID)
	assert.Equal(t, int64(4), resp.Slots[1].EmployeeID)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[1].Time)
	assert.Equal(t, types.TimeString("09:15"), resp.Slots[2].Time)
}

func TestUseCase_Execute_NoWorkingHours(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "00:00", "24:00", domain.BlockVacation),
	}}
	appointments := &fakeAppointments{}
	uc := newTestUseCase(schedule, appointments)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, appointments.filters)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown service",
			req:     &Request{TenantID: 1, ServiceID: 99, Date: monday},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "unknown location",
			req:     &Request{TenantID: 1, ServiceID: 7, Date: monday, LocationID: ptr.Ptr(int64(8))},
			wantErr: ErrLocationNotFound,
		},
		{
			name:    "unknown employee",
			req:     &Request{TenantID: 1, ServiceID: 7, Date: monday, EmployeeID: ptr.Ptr(int64(8))},
			wantErr: ErrEmployeeNotFound,
		},
		{
			name:    "missing date",
			req:     &Request{TenantID: 1, ServiceID: 7},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing tenant",
			req:     &Request{ServiceID: 7, Date: monday},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeSchedule{}, &fakeAppointments{})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_ScheduleFailure(t *testing.T) {
	uc := newTestUseCase(&fakeSchedule{err: errors.New("db down")}, &fakeAppointments{})

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_ReadsFromOneSnapshot(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{
		block(4, "09:00", "12:00", domain.BlockWorkingHours),
		block(5, "09:00", "12:00", domain.BlockWorkingHours),
	}}
	appointments := &fakeAppointments{}
	tx := &fakeTxManager{}

	_, err := newTestUseCaseWithTx(schedule, appointments, tx).
		Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.True(t, schedule.inSnapshot)
	assert.Len(t, appointments.filters, 2)
	assert.Zero(t, appointments.outside)
}

func TestUseCase_Execute_ReadTransactionFailure(t *testing.T) {
	schedule := &fakeSchedule{blocks: []*domain.ScheduleBlock{block(4, "09:00", "12:00", domain.BlockWorkingHours)}}
	tx := &fakeTxManager{commitErr: errors.New("connection reset")}

	_, err := newTestUseCaseWithTx(schedule, &fakeAppointments{}, tx).
		Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: monday})

	assert.ErrorIs(t, err, ErrInternal)
}
