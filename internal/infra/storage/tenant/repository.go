package tenant

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

// Repository репозиторий арендаторов и их настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория арендаторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive возвращает арендаторов в статусе ACTIVE, упорядоченных по ID
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "status").
		From("tenants").
		Where(squirrel.Eq{"status": domain.TenantActive}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tenants := make([]*domain.Tenant, 0)
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Status); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return tenants, nil
}

// GetSettings получает настройки арендатора
// Настройки валидируются при чтении: некорректные значения в БД не попадают в расчеты
func (r *Repository) GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("tenant_id", "reschedule_window_hours", "updated_at").
		From("tenant_settings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings  domain.TenantSettings
		window    sql.NullInt32
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.TenantID, &window, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	if window.Valid {
		hours := int(window.Int32)
		settings.RescheduleWindowHours = &hours
	}
	settings.UpdatedAt = updatedAt.Time

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: tenant=%d: %v", ErrInvalidSettings, tenantID, err)
	}

	return &settings, nil
}

// UpsertSettings создает или заменяет настройки арендатора
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.TenantSettings) (*domain.TenantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tenant_settings").
		Columns("tenant_id", "reschedule_window_hours").
		Values(settings.TenantID, settings.RescheduleWindowHours).
		Suffix("ON CONFLICT (tenant_id) DO UPDATE SET " +
			"reschedule_window_hours = EXCLUDED.reschedule_window_hours, updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time
	return settings, nil
}
