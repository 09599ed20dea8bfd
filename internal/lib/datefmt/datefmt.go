// Package datefmt разбирает и форматирует даты в форматах внешней системы заказов.
//
// Внешний API отдаёт даты строками в нескольких форматах, а отсутствие даты
// кодирует «нулевой» датой вида 0000-00-00.
package datefmt

import (
	"math"
	"strings"
	"time"
)

// DisplayLayout — формат отображения даты в истории заказов (Jun 5, 2025).
const DisplayLayout = "Jan 2, 2006"

var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
}

// IsSentinel сообщает, является ли строка «нулевой» датой:
// все цифры равны нулю, а остальные символы — разделители даты и времени.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	digits := 0
	for _, r := range s {
		switch {
		case r == '0':
			digits++
		case r == '-' || r == '/' || r == ':' || r == ' ' || r == 'T' || r == '.':
		default:
			return false
		}
	}
	return digits > 0
}

// Parse разбирает дату внешней системы в UTC.
// Пустая строка, нулевая дата и неизвестный формат дают ok == false.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || IsSentinel(s) {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format возвращает дату в виде "Jan 2, 2006".
// Если дату разобрать не удалось, возвращается исходная строка.
func Format(s string) string {
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.Format(DisplayLayout)
}

// DaysUntil считает количество дней от from до to с округлением вверх.
// Для дат в прошлом результат отрицательный или нулевой.
func DaysUntil(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
