package directory

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден у арендатора
	ErrEmployeeNotFound = errors.New("directory.repository: employee not found")

	// ErrLocationNotFound возвращается, когда локация не найдена у арендатора
	ErrLocationNotFound = errors.New("directory.repository: location not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
