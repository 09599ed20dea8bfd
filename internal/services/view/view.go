// Package view строит плоское представление истории заказов и поиск по нему.
package view

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/datefmt"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// FlattenProducts разворачивает заказы в строки «заказ × товар»
// в порядке заказов и товаров внутри них.
func FlattenProducts(orders []models.Order) []models.FlattenedProductRow {
	rows := []models.FlattenedProductRow{}
	for _, order := range orders {
		for i, p := range order.Products {
			rows = append(rows, models.FlattenedProductRow{
				Product:   p,
				OrderID:   order.OrderID,
				OrderDate: order.Date,
				Key:       fmt.Sprintf("%s-%d", order.OrderID, i),
			})
		}
	}
	return rows
}

// FilterRows возвращает строки, у которых запрос без учёта регистра входит
// в название товара, в дату заказа вида "Jun 5, 2025" или в исходную дату.
// Пустой запрос возвращает rows без изменений.
func FilterRows(rows []models.FlattenedProductRow, query string) []models.FlattenedProductRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	filtered := []models.FlattenedProductRow{}
	for _, row := range rows {
		if matches(row, q) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func matches(row models.FlattenedProductRow, q string) bool {
	return strings.Contains(strings.ToLower(row.Name), q) ||
		strings.Contains(strings.ToLower(datefmt.Format(row.OrderDate)), q) ||
		strings.Contains(strings.ToLower(row.OrderDate), q)
}

// FormatPrice форматирует сумму в долларах с двумя знаками после запятой.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
