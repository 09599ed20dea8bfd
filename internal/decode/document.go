// Package decode переводит нетипизированные ответы внешней системы заказов
// в строгие доменные типы.
//
// Внешний API возвращает числа и флаги строками, опускает необязательные поля
// и кодирует отсутствие даты нулевой датой. Вся защитная обработка таких
// значений собрана здесь, чтобы остальной код работал только с models.
package decode

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrMissingField возвращается, если в документе нет обязательного поля.
var ErrMissingField = errors.New("missing field")

// Document — нетипизированный JSON-объект ответа.
type Document map[string]any

// Lookup спускается по вложенным объектам и возвращает значение по пути ключей.
func (d Document) Lookup(keys ...string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range keys {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Object возвращает вложенный объект по ключу.
func (d Document) Object(key string) (Document, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return Document(obj), true
}

// ResponseCode возвращает response_code ответа в виде строки.
func (d Document) ResponseCode() string {
	code, _ := String(d["response_code"])
	return code
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case Document:
		return obj, true
	default:
		return nil, false
	}
}

// String приводит скалярное значение к строке.
// Числа сохраняют исходную запись из JSON.
func String(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

// Int приводит значение к целому числу. Строки разбираются после обрезки пробелов,
// дробные числа отбрасывают дробную часть.
func Int(v any) (int, bool) {
	switch val := v.(type) {
	case string:
		return parseInt(strings.TrimSpace(val))
	case json.Number:
		return parseInt(val.String())
	case float64:
		return truncate(val)
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// parseInt разбирает целое, а дробное значение усекает так же, как float64.
func parseInt(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return truncate(f)
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// Float приводит значение к числу с плавающей точкой.
// NaN и бесконечности считаются нечисловыми значениями.
func Float(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Amount возвращает неотрицательную сумму: отсутствующие, нечисловые
// и отрицательные значения дают 0.
func Amount(v any) float64 {
	f, ok := Float(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

// Flag возвращает true только для строкового флага "1".
func Flag(v any) bool {
	s, ok := String(v)
	return ok && strings.TrimSpace(s) == "1"
}

// StringOr возвращает непустую строку или значение по умолчанию.
func StringOr(v any, def string) string {
	s, ok := String(v)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
