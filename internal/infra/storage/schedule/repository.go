package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий недельных блоков расписания (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBlocks получает блоки расписания арендатора на день недели
// Фильтры по локации, сотруднику и типу блока опциональны
// Время читается как текст: TIME '24:00' не представим в time.Time
func (r *Repository) ListBlocks(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"sb.id",
		"sb.tenant_id",
		"sb.employee_id",
		"COALESCE(e.name, '')",
		"sb.location_id",
		"sb.weekday",
		"sb.start_time::text",
		"sb.end_time::text",
		"sb.block_type",
	).
		From("schedule_blocks sb").
		LeftJoin("employees e ON e.id = sb.employee_id").
		Where(squirrel.Eq{"sb.tenant_id": filter.TenantID, "sb.weekday": filter.Weekday})

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sb.location_id": *filter.LocationID})
	}

	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sb.employee_id": *filter.EmployeeID})
	}

	if len(filter.BlockTypes) > 0 {
		types := make([]string, len(filter.BlockTypes))
		for i, t := range filter.BlockTypes {
			types[i] = string(t)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"sb.block_type": types})
	}

	query, args, err := selectBuilder.
		OrderBy("sb.employee_id ASC", "sb.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.ScheduleBlock, 0)
	for rows.Next() {
		var b domain.ScheduleBlock
		err := rows.Scan(
			&b.ID,
			&b.TenantID,
			&b.EmployeeID,
			&b.EmployeeName,
			&b.LocationID,
			&b.Weekday,
			&b.StartTime,
			&b.EndTime,
			&b.BlockType,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBlocks - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
