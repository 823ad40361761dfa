package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, status FROM tenants WHERE status = \$1 ORDER BY id ASC`).
		WithArgs("ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).
			AddRow(int64(1), "Salon A", "ACTIVE").
			AddRow(int64(2), "Salon B", "ACTIVE"))

	tenants, err := NewRepository(db).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	assert.Equal(t, domain.TenantActive, tenants[1].Status)
}

func TestRepository_GetSettings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	updated := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM tenant_settings`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id", "reschedule_window_hours", "updated_at"}).
			AddRow(int64(1), 4, updated))

	settings, err := repo.GetSettings(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, settings.RescheduleWindow())

	mock.ExpectQuery(`FROM tenant_settings`).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id", "reschedule_window_hours", "updated_at"}))
	_, err = repo.GetSettings(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	mock.ExpectQuery(`FROM tenant_settings`).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id", "reschedule_window_hours", "updated_at"}).
			AddRow(int64(3), 500, updated))
	_, err = repo.GetSettings(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestRepository_UpsertSettings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	updated := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO tenant_settings .* ON CONFLICT \(tenant_id\) DO UPDATE`).
		WithArgs(int64(1), 6).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	settings, err := NewRepository(db).UpsertSettings(context.Background(), &domain.TenantSettings{
		TenantID:              1,
		RescheduleWindowHours: ptr.Ptr(6),
	})
	require.NoError(t, err)
	assert.Equal(t, updated, settings.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
