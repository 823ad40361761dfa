package get_available_slots

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string         `json:"date"`
	ServiceID       int64          `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	TimeSlots       []SlotResponse `json:"timeSlots"`
}

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Time         string `json:"time"`
	StartTime    string `json:"startTime"`
	Available    bool   `json:"available"`
	EmployeeID   int64  `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	LocationID   int64  `json:"locationId"`
}

var errMissing = errors.New("is required")

// queryError ошибка разбора параметра запроса
type queryError struct {
	param string
	err   error
}

func (e *queryError) Error() string {
	return fmt.Sprintf("query parameter %s: %v", e.param, e.err)
}

func (e *queryError) Unwrap() error {
	return e.err
}

// ToUseCaseRequest разбирает query параметры в модель use case
func ToUseCaseRequest(tenantID int64, query url.Values) (*getAvailableSlots.Request, error) {
	serviceID, err := parseID(query, "serviceId", true)
	if err != nil {
		return nil, err
	}

	rawDate := query.Get("date")
	if rawDate == "" {
		return nil, &queryError{param: "date", err: errMissing}
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		return nil, &queryError{param: "date", err: err}
	}

	req := &getAvailableSlots.Request{
		TenantID:  tenantID,
		ServiceID: *serviceID,
		Date:      date,
	}

	if req.LocationID, err = parseID(query, "locationId", false); err != nil {
		return nil, err
	}
	if req.EmployeeID, err = parseID(query, "employeeId", false); err != nil {
		return nil, err
	}

	return req, nil
}

// parseID разбирает положительный ID из query, nil если параметр не обязателен и отсутствует
func parseID(query url.Values, name string, required bool) (*int64, error) {
	raw := query.Get(name)
	if raw == "" {
		if required {
			return nil, &queryError{param: name, err: errMissing}
		}
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &queryError{param: name, err: err}
	}
	if id <= 0 {
		return nil, &queryError{param: name, err: errors.New("must be positive")}
	}
	return &id, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:         s.Time.String(),
			StartTime:    s.Start.Format(time.RFC3339),
			Available:    s.Available,
			EmployeeID:   s.EmployeeID,
			EmployeeName: s.EmployeeName,
			LocationID:   s.LocationID,
		})
	}

	return &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		TimeSlots:       slots,
	}
}
