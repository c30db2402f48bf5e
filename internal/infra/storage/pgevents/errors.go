package pgevents

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pgevents.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pgevents.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pgevents.repository: failed to scan row")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("pgevents.repository: transaction error")
)
