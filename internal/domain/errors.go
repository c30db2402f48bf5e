package domain

import "errors"

var (
	// ErrRejected событие не прошло проверку правил (см. Violations)
	ErrRejected = errors.New("event rejected")

	// ErrInvalidEvent у события отсутствуют обязательные поля или отрицательные количества
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidCatalog каталог ресурсов некорректен
	ErrInvalidCatalog = errors.New("invalid resource catalog")
)
