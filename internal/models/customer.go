// Package models содержит доменные структуры портала: покупателя, заказы,
// товары и производные представления (предстоящие платежи, плоские строки
// истории заказов). Все значения неизменяемы после создания и живут
// в пределах одной пользовательской сессии.
package models

import (
	"slices"
	"strings"
)

// Customer — канонический покупатель, найденный по email и ZIP.
// Создаётся только если поиск вернул ровно одно совпадение.
type Customer struct {
	CustomerID string   `json:"customer_id"` // Идентификатор покупателя во внешней системе
	OrderCount int      `json:"order_count"` // Количество заказов по данным внешней системы
	Orders     []string `json:"orders"`      // Идентификаторы заказов в порядке из order_list
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email"`
}

// HasOrders сообщает, есть ли у покупателя хотя бы один непустой идентификатор заказа.
// Пустой order_list разбирается в [""], что означает отсутствие заказов.
func (c Customer) HasOrders() bool {
	return slices.ContainsFunc(c.Orders, func(id string) bool {
		return strings.TrimSpace(id) != ""
	})
}
