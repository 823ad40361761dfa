package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	TenantID   int64     // ID арендатора
	ServiceID  int64     // ID услуги
	Date       time.Time // Календарная дата (время игнорируется)
	LocationID *int64    // Фильтр по локации (опционально)
	EmployeeID *int64    // Фильтр по сотруднику (опционально)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time     // Запрошенная дата
	ServiceID       int64         // ID услуги
	ServiceName     string        // Название услуги
	DurationMinutes int           // Длительность услуги
	Slots           []domain.Slot // Все кандидаты, включая занятые, по возрастанию времени
}
