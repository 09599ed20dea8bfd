package decode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/subscription-portal/internal/models"
)

func TestOrder_SubscriptionProduct(t *testing.T) {
	doc := Document{
		"response_code":    "100",
		"order_id":         json.Number("101"),
		"acquisition_date": "2025-06-05 10:11:12",
		"order_total":      "19.99",
		"products": []any{
			map[string]any{
				"name":                            "Plan A",
				"price":                           "19.99",
				"billing_model":                   map[string]any{"name": "Monthly Subscription"},
				"recurring_date":                  "2099-01-01",
				"next_subscription_product_price": "24.99",
				"is_in_trial":                     "1",
			},
		},
	}

	order := Order(doc)

	assert.Equal(t, "101", order.OrderID)
	assert.Equal(t, "2025-06-05 10:11:12", order.Date)
	assert.InDelta(t, 19.99, order.Total, 1e-9)
	assert.Equal(t, []models.Product{{
		Name:             "Plan A",
		Price:            19.99,
		OrderType:        "Monthly Subscription",
		RecurringDate:    "2099-01-01",
		NextBillingPrice: 24.99,
		IsTrial:          true,
		IsRecurring:      true,
	}}, order.Products)
}

func TestOrder_Defaults(t *testing.T) {
	order := Order(Document{"order_id": "202"})

	assert.Equal(t, "202", order.OrderID)
	assert.Equal(t, "", order.Date)
	assert.Zero(t, order.Total)
	assert.NotNil(t, order.Products)
	assert.Empty(t, order.Products)
}

func TestProduct_Defaults(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want models.Product
	}{
		{
			name: "empty product",
			doc:  Document{},
			want: models.Product{Name: models.UnknownProduct, OrderType: models.UnknownOrderType},
		},
		{
			name: "straight sale",
			doc: Document{
				"name":          "Starter Kit",
				"price":         "abc",
				"billing_model": map[string]any{"name": "Straight Sale"},
				"is_in_trial":   "0",
			},
			want: models.Product{Name: "Starter Kit", OrderType: "Straight Sale"},
		},
		{
			name: "billing model without name",
			doc: Document{
				"name":           "Refill",
				"billing_model":  map[string]any{},
				"recurring_date": "0000-00-00",
			},
			want: models.Product{Name: "Refill", OrderType: models.UnknownOrderType, RecurringDate: "0000-00-00"},
		},
		{
			name: "case insensitive subscription",
			doc:  Document{"billing_model": map[string]any{"name": "SUBSCRIPTION - yearly"}},
			want: models.Product{Name: models.UnknownProduct, OrderType: "SUBSCRIPTION - yearly", IsRecurring: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Product(tt.doc))
		})
	}
}

func TestProducts_NonObjectEntries(t *testing.T) {
	products := Products([]any{"garbage", map[string]any{"name": "Ok"}})

	assert.Len(t, products, 2)
	assert.Equal(t, models.UnknownProduct, products[0].Name)
	assert.Equal(t, "Ok", products[1].Name)
}
