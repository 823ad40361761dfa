package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableName = "appointments"

// Колонки выборки; имена сотрудника и локации подтягиваются join'ом,
// чтобы не делать второй запрос
var selectColumns = []string{
	"a.id",
	"a.tenant_id",
	"a.service_id",
	"a.location_id",
	"a.employee_id",
	"a.start_time",
	"a.end_time",
	"a.duration_minutes",
	"a.status",
	"a.booked_by_id",
	"a.booked_by",
	"a.booked_by_name",
	"a.service_name",
	"a.canceled_by",
	"a.cancel_reason",
	"a.fulfillment_date",
	"a.created_at",
	"a.updated_at",
	"COALESCE(e.name, '')",
	"COALESCE(l.name, '')",
}

// Repository репозиторий записей на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись
// Если пересечение отклонено exclusion constraint'ом, возвращает ErrSlotConflict
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"tenant_id",
			"service_id",
			"location_id",
			"employee_id",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"booked_by_id",
			"booked_by",
			"booked_by_name",
			"service_name",
		).
		Values(
			a.TenantID,
			a.ServiceID,
			a.LocationID,
			a.EmployeeID,
			a.StartTime,
			a.End(),
			a.DurationMinutes,
			a.Status,
			a.BookedByID,
			a.BookedBy,
			a.BookedByName,
			a.ServiceName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if IsConflictError(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.EndTime = a.End()
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись арендатора по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().
		Where(squirrel.Eq{"a.tenant_id": tenantID, "a.id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if IsConflictError(err) {
			return nil, fmt.Errorf("%w: GetByID - %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListByEmployee получает записи сотрудника, пересекающие окно [From, To)
//
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка пересечений
// и вставка новой записи выполнялись атомарно
func (r *Repository) ListByEmployee(ctx context.Context, filter domain.EmployeeDayFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().
		Where(squirrel.Eq{"a.tenant_id": filter.TenantID, "a.employee_id": filter.EmployeeID}).
		Where(squirrel.Lt{"a.start_time": filter.To}).
		Where(squirrel.Gt{"a.end_time": filter.From}).
		OrderBy("a.start_time ASC", "a.id ASC")

	if filter.OnlyBlocking {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": statusStrings(domain.BlockingStatuses)})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"a.id": *filter.ExcludeID})
	}

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if IsConflictError(err) {
			return nil, fmt.Errorf("%w: ListByEmployee - %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: ListByEmployee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update сохраняет изменяемые поля записи: время, статус и данные отмены/выполнения
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_time", a.StartTime).
		Set("end_time", a.End()).
		Set("status", a.Status).
		Set("canceled_by", a.CanceledBy).
		Set("cancel_reason", a.CancelReason).
		Set("fulfillment_date", a.FulfillmentDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": a.TenantID, "id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if IsConflictError(err) {
			return nil, fmt.Errorf("%w: Update - %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	a.EndTime = a.End()
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// Delete физически удаляет запись
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// FindStaleIDs возвращает ID записей в статусе SCHEDULED,
// начало которых попадает в (after, notAfter]
func (r *Repository) FindStaleIDs(ctx context.Context, tenantID int64, after, notAfter time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID, "status": domain.StatusScheduled}).
		Where(squirrel.Gt{"start_time": after}).
		Where(squirrel.LtOrEq{"start_time": notAfter}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindStaleIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindStaleIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: FindStaleIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindStaleIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// CancelStale отменяет пачку записей от имени системы
// Обновляются только строки, которые все еще в статусе SCHEDULED:
// ручное изменение статуса, сделанное параллельно, не перезаписывается
func (r *Repository) CancelStale(ctx context.Context, tenantID int64, ids []int64, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", domain.AutoCancelReason).
		Set("canceled_by", domain.SystemActor).
		Set("updated_at", now).
		Where(squirrel.Eq{"tenant_id": tenantID, "status": domain.StatusScheduled}).
		Where(squirrel.Expr("id = ANY(?)", pq.Array(ids))).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelStale - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(selectColumns...).
		From(tableName + " a").
		LeftJoin("employees e ON e.id = a.employee_id").
		LeftJoin("locations l ON l.id = a.location_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну строку в порядке selectColumns
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		canceledBy           sql.NullString
		cancelReason         sql.NullString
		fulfillmentDate      sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.ServiceID,
		&a.LocationID,
		&a.EmployeeID,
		&a.StartTime,
		&a.EndTime,
		&a.DurationMinutes,
		&a.Status,
		&a.BookedByID,
		&a.BookedBy,
		&a.BookedByName,
		&a.ServiceName,
		&canceledBy,
		&cancelReason,
		&fulfillmentDate,
		&createdAt,
		&updatedAt,
		&a.EmployeeName,
		&a.LocationName,
	)
	if err != nil {
		return nil, err
	}

	if canceledBy.Valid {
		a.CanceledBy = &canceledBy.String
	}
	if cancelReason.Valid {
		a.CancelReason = &cancelReason.String
	}
	if fulfillmentDate.Valid {
		a.FulfillmentDate = &fulfillmentDate.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		if IsConflictError(err) {
			return nil, fmt.Errorf("%w: scanAppointments - %v", ErrSlotConflict, err)
		}
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
