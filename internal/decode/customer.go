package decode

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

// TotalCustomers возвращает число найденных покупателей из ответа customer_find.
func TotalCustomers(d Document) (int, bool) {
	return Int(d["total_customers"])
}

// Customer извлекает единственного покупателя из ответа customer_find.
// Запись ищется в data по значению customer_ids.
func Customer(d Document) (models.Customer, error) {
	const op = "decode.Customer"

	id, ok := String(d["customer_ids"])
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return models.Customer{}, fmt.Errorf("%s: customer_ids: %w", op, ErrMissingField)
	}

	data, ok := d.Object("data")
	if !ok {
		return models.Customer{}, fmt.Errorf("%s: data: %w", op, ErrMissingField)
	}
	record, ok := data.Object(id)
	if !ok {
		return models.Customer{}, fmt.Errorf("%s: data[%s]: %w", op, id, ErrMissingField)
	}

	orderList, ok := String(record["order_list"])
	if !ok {
		return models.Customer{}, fmt.Errorf("%s: order_list: %w", op, ErrMissingField)
	}

	orderCount, _ := Int(record["order_count"])
	if orderCount < 0 {
		orderCount = 0
	}

	firstName, _ := String(record["first_name"])
	lastName, _ := String(record["last_name"])
	email, _ := String(record["email"])

	return models.Customer{
		CustomerID: id,
		OrderCount: orderCount,
		Orders:     strings.Split(orderList, ","),
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
	}, nil
}
