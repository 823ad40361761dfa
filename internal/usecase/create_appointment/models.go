package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID   int64     // ID арендатора
	UserID     int64     // ID пользователя, оформляющего запись
	ServiceID  int64     // ID услуги
	LocationID int64     // ID локации
	EmployeeID int64     // ID сотрудника
	StartTime  time.Time // Абсолютное время начала
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
