package tenant

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда у арендатора нет сохраненных настроек
	ErrSettingsNotFound = errors.New("tenant.repository: settings not found")

	// ErrInvalidSettings возвращается, когда сохраненные настройки не проходят валидацию
	ErrInvalidSettings = errors.New("tenant.repository: stored settings are invalid")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tenant.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tenant.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tenant.repository: failed to scan row")
)
