package models

import "time"

// UpcomingPayment — предстоящее списание по подписке.
// Вычисляется на лету и нигде не сохраняется.
type UpcomingPayment struct {
	ProductName string    `json:"product_name"`
	Date        time.Time `json:"date"`     // Разобранная дата списания
	RawDate     string    `json:"raw_date"` // Дата в исходном формате API
	Amount      float64   `json:"amount"`
	IsTrial     bool      `json:"is_trial"`
}

// NextPayment — ближайшее списание и количество дней до него.
type NextPayment struct {
	UpcomingPayment
	DaysUntil int `json:"days_until"`
}
