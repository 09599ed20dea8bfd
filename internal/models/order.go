package models

import "strings"

const (
	// UnknownProduct — имя товара, если внешняя система его не вернула.
	UnknownProduct = "Unknown Product"
	// UnknownOrderType — тип заказа, если billing_model отсутствует.
	UnknownOrderType = "Unknown"
)

// Order представляет нормализованный заказ.
// Date хранится в исходном формате внешней системы и не приводится к time.Time.
type Order struct {
	OrderID  string    `json:"order_id"` // Идентификатор в том виде, в котором его вернул API
	Date     string    `json:"date"`     // Дата оформления (acquisition_date)
	Total    float64   `json:"total"`    // Сумма заказа, 0 если поле отсутствует
	Products []Product `json:"products"` // Товары в порядке из ответа API
}

// Product — товар внутри заказа.
type Product struct {
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	OrderType        string  `json:"order_type"`         // Название модели оплаты (billing_model.name)
	RecurringDate    string  `json:"recurring_date"`     // Дата следующего списания, пустая строка если нет
	NextBillingPrice float64 `json:"next_billing_price"` // Цена следующего списания после промо-периода
	IsTrial          bool    `json:"is_trial"`
	IsRecurring      bool    `json:"is_recurring"`
}

// IsSubscriptionType сообщает, относится ли тип заказа к подписке.
func IsSubscriptionType(orderType string) bool {
	return strings.Contains(strings.ToLower(orderType), "subscription")
}
