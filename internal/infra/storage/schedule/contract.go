package schedule

import "github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"

// DBExecutor общий интерфейс *sql.DB и транзакции из контекста
type DBExecutor = dbmetrics.DBExecutor
