package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository справочник сотрудников и локаций арендатора (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetEmployee получает сотрудника арендатора по ID
func (r *Repository) GetEmployee(ctx context.Context, tenantID, employeeID int64) (*domain.Employee, error) {
	var e domain.Employee
	err := r.getNamed(ctx, "employees", tenantID, employeeID, &e.ID, &e.TenantID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetEmployee: %w", err)
	}
	return &e, nil
}

// GetLocation получает локацию арендатора по ID
func (r *Repository) GetLocation(ctx context.Context, tenantID, locationID int64) (*domain.Location, error) {
	var l domain.Location
	err := r.getNamed(ctx, "locations", tenantID, locationID, &l.ID, &l.TenantID, &l.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetLocation: %w", err)
	}
	return &l, nil
}

// getNamed читает строку (id, tenant_id, name) из таблицы справочника
func (r *Repository) getNamed(ctx context.Context, table string, tenantID, id int64, dest ...interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name").
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBuildQuery, table, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScanRow, table, err)
	}
	return nil
}
