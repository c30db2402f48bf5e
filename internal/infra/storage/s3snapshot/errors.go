package s3snapshot

import "errors"

var (
	// ErrPutFailed возвращается при ошибке загрузки снимка в S3
	ErrPutFailed = errors.New("s3snapshot: put object failed")

	// ErrGetFailed возвращается при ошибке чтения снимка из S3
	ErrGetFailed = errors.New("s3snapshot: get object failed")

	// ErrSession возвращается, когда не удалось создать AWS сессию
	ErrSession = errors.New("s3snapshot: session error")
)
