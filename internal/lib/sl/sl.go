// Package sl содержит вспомогательные функции для работы с логгером slog:
// единообразные атрибуты для ошибок и идентификаторов заказов.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil возвращает пустую строку, чтобы лог не падал на необязательных ошибках.
//
// Пример:
//
//	log.Warn("order skipped", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// OrderID возвращает атрибут с идентификатором заказа внешней системы.
func OrderID(id string) slog.Attr {
	return slog.String("order_id", id)
}
