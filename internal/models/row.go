package models

// FlattenedProductRow — строка истории заказов: товар вместе с данными заказа.
// Key уникален только в сочетании order_id и позиции товара внутри заказа.
type FlattenedProductRow struct {
	Product
	OrderID   string `json:"order_id"`
	OrderDate string `json:"order_date"`
	Key       string `json:"key"`
}
