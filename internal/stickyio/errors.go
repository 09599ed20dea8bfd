package stickyio

import (
	"errors"
	"fmt"
)

// SuccessCode — код успешного ответа внешней системы.
const SuccessCode = "100"

// ErrMalformedResponse возвращается, когда в успешном ответе нет обязательных полей.
var ErrMalformedResponse = errors.New("malformed response")

// TransportError — ошибка сетевого или HTTP-уровня.
type TransportError struct {
	Path       string // Эндпоинт, на котором произошла ошибка
	StatusCode int    // HTTP-статус, 0 если ответа не было
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("stickyio: %s: status %d: %v", e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("stickyio: %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError — ответ внешней системы с кодом, отличным от SuccessCode.
type APIError struct {
	Path string
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stickyio: %s: response code %q", e.Path, e.Code)
}
