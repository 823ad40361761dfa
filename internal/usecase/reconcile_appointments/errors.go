package reconcile_appointments

import "errors"

var (
	// ErrSweepInProgress возвращается, когда предыдущий прогон еще не завершился
	ErrSweepInProgress = errors.New("reconcile_appointments: sweep already in progress")

	// ErrInternal возвращается, когда прогон не удалось начать
	ErrInternal = errors.New("reconcile_appointments: internal error")
)
