package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// interval занятый промежуток времени сотрудника
type interval struct {
	start time.Time
	end   time.Time
}

// employeeDay расписание одного сотрудника на запрошенный день
type employeeDay struct {
	employeeID   int64
	employeeName string
	working      []*domain.ScheduleBlock
	busy         []interval
	appointments []*domain.Appointment
}

// groupBlocks раскладывает блоки расписания по сотрудникам
// Перерывы и отпуска переводятся в абсолютные интервалы на указанную дату
// Порядок сотрудников совпадает с порядком первого появления в blocks
func groupBlocks(blocks []*domain.ScheduleBlock, date time.Time, loc *time.Location) []*employeeDay {
	days := make([]*employeeDay, 0)
	index := make(map[int64]*employeeDay)

	for _, b := range blocks {
		if !b.IsValid() {
			continue
		}

		day, ok := index[b.EmployeeID]
		if !ok {
			day = &employeeDay{employeeID: b.EmployeeID, employeeName: b.EmployeeName}
			index[b.EmployeeID] = day
			days = append(days, day)
		}

		if b.BlockType.IsBusy() {
			day.busy = append(day.busy, interval{start: b.StartTime.On(date, loc), end: b.EndTime.On(date, loc)})
			continue
		}
		day.working = append(day.working, b)
	}

	// Сотрудники без рабочих часов в этот день слотов не дают
	result := days[:0]
	for _, day := range days {
		if len(day.working) > 0 {
			result = append(result, day)
		}
	}
	return result
}

// generateSlots генерирует кандидатов с шагом SlotGranularityMinutes внутри рабочих блоков
// Кандидат T попадает в список, если T + duration не выходит за конец блока
// Слот недоступен, если пересекается с блокирующей записью, перерывом или отпуском
func generateSlots(day *employeeDay, date time.Time, loc *time.Location, durationMinutes int) []domain.Slot {
	slots := make([]domain.Slot, 0)
	seen := make(map[int]bool)
	duration := time.Duration(durationMinutes) * time.Minute

	for _, block := range day.working {
		blockEnd := block.EndTime.Minutes()

		for m := block.StartTime.Minutes(); m+durationMinutes <= blockEnd; m += domain.SlotGranularityMinutes {
			// Пересекающиеся рабочие блоки одного сотрудника не дублируют слоты
			if seen[m] {
				continue
			}
			seen[m] = true

			slotTime, err := types.FromMinutes(m)
			if err != nil {
				break
			}

			start := slotTime.On(date, loc)
			end := start.Add(duration)

			slots = append(slots, domain.Slot{
				Time:            slotTime,
				Start:           start,
				End:             end,
				EmployeeID:      day.employeeID,
				EmployeeName:    day.employeeName,
				LocationID:      block.LocationID,
				DurationMinutes: durationMinutes,
				Available:       isFree(day, start, end),
			})
		}
	}

	return slots
}

// isFree проверяет, что интервал [start, end) не пересекается с занятостью сотрудника
func isFree(day *employeeDay, start, end time.Time) bool {
	for _, b := range day.busy {
		if domain.Overlaps(start, end, b.start, b.end) {
			return false
		}
	}

	for _, a := range day.appointments {
		if a.IsBlocking() && a.OverlapsWith(start, end) {
			return false
		}
	}

	return true
}

// sortSlots упорядочивает слоты по времени начала, затем по ID сотрудника
func sortSlots(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].EmployeeID < slots[j].EmployeeID
	})
}
