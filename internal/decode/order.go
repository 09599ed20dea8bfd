package decode

import (
	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// Order переводит успешный ответ order_view в models.Order.
// Функция тотальна: отсутствующие поля заменяются значениями по умолчанию.
func Order(d Document) models.Order {
	orderID, _ := String(d["order_id"])
	date, _ := String(d["acquisition_date"])

	return models.Order{
		OrderID:  orderID,
		Date:     date,
		Total:    Amount(d["order_total"]),
		Products: Products(d["products"]),
	}
}

// Products разбирает массив товаров. Отсутствующий массив даёт пустой срез.
func Products(v any) []models.Product {
	items, ok := v.([]any)
	if !ok {
		return []models.Product{}
	}
	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		obj, _ := asObject(item)
		products = append(products, Product(Document(obj)))
	}
	return products
}

// Product разбирает один товар заказа.
func Product(d Document) models.Product {
	orderType := models.UnknownOrderType
	if name, ok := d.Lookup("billing_model", "name"); ok {
		orderType = StringOr(name, models.UnknownOrderType)
	}
	recurringDate, _ := String(d["recurring_date"])

	return models.Product{
		Name:             StringOr(d["name"], models.UnknownProduct),
		Price:            Amount(d["price"]),
		OrderType:        orderType,
		RecurringDate:    recurringDate,
		NextBillingPrice: Amount(d["next_subscription_product_price"]),
		IsTrial:          Flag(d["is_in_trial"]),
		IsRecurring:      models.IsSubscriptionType(orderType),
	}
}
