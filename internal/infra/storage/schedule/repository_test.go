package schedule

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestRepository_ListBlocks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM schedule_blocks sb LEFT JOIN employees e .* sb.employee_id = \$3 AND sb.block_type IN \(\$4,\$5\)`).
		WithArgs(int64(1), 1, int64(4), "WORKING_HOURS", "BREAK").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "employee_id", "name", "location_id", "weekday", "start_time", "end_time", "block_type"}).
			AddRow(int64(11), int64(1), int64(4), "Bob", int64(3), 1, "09:00:00", "17:00:00", "WORKING_HOURS").
			AddRow(int64(12), int64(1), int64(4), "Bob", int64(3), 1, "13:00:00", "24:00:00", "BREAK"))

	repo := NewRepository(db)
	blocks, err := repo.ListBlocks(context.Background(), domain.ScheduleFilter{
		TenantID:   1,
		Weekday:    1,
		EmployeeID: ptr.Ptr(int64(4)),
		BlockTypes: []domain.BlockType{domain.BlockWorkingHours, domain.BlockBreak},
	})

	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, types.TimeString("09:00"), blocks[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), blocks[0].EndTime)
	assert.Equal(t, "Bob", blocks[0].EmployeeName)
	assert.Equal(t, types.TimeString("24:00"), blocks[1].EndTime)
	assert.Equal(t, domain.BlockBreak, blocks[1].BlockType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
