// Package schedule вычисляет график предстоящих списаний по нормализованным заказам.
// Все функции чистые: текущее время передаётся явно.
package schedule

import (
	"slices"
	"time"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/datefmt"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// DeriveUpcomingPayments возвращает будущие списания по всем товарам-подпискам,
// отсортированные по дате. Товар попадает в график, если он регулярный,
// у него есть дата списания, она не нулевая и строго позже now.
// При равных датах сохраняется исходный порядок товаров.
func DeriveUpcomingPayments(orders []models.Order, now time.Time) []models.UpcomingPayment {
	payments := []models.UpcomingPayment{}
	for _, order := range orders {
		for _, p := range order.Products {
			if !p.IsRecurring || p.RecurringDate == "" || datefmt.IsSentinel(p.RecurringDate) {
				continue
			}
			date, ok := datefmt.Parse(p.RecurringDate)
			if !ok || !date.After(now) {
				continue
			}
			payments = append(payments, models.UpcomingPayment{
				ProductName: p.Name,
				Date:        date,
				RawDate:     p.RecurringDate,
				Amount:      p.NextBillingPrice,
				IsTrial:     p.IsTrial,
			})
		}
	}

	slices.SortStableFunc(payments, func(a, b models.UpcomingPayment) int {
		return a.Date.Compare(b.Date)
	})
	return payments
}

// NextPayment возвращает ближайшее списание из отсортированного графика
// и число дней до него с округлением вверх.
func NextPayment(payments []models.UpcomingPayment, now time.Time) (models.NextPayment, bool) {
	if len(payments) == 0 {
		return models.NextPayment{}, false
	}
	next := payments[0]
	return models.NextPayment{
		UpcomingPayment: next,
		DaysUntil:       datefmt.DaysUntil(now, next.Date),
	}, true
}
