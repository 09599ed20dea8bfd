package stickyio

// Эндпоинты внешней системы.
const (
	PathCustomerFind = "customer_find"
	PathOrderView    = "order_view"
)

// CustomerFindRequest — тело запроса customer_find.
type CustomerFindRequest struct {
	CampaignID string           `json:"campaign_id"`
	StartDate  string           `json:"start_date"` // MM/DD/YYYY
	EndDate    string           `json:"end_date"`   // MM/DD/YYYY
	Criteria   CustomerCriteria `json:"criteria"`
	SearchType string           `json:"search_type"`
	ReturnType string           `json:"return_type"`
}

// CustomerCriteria — критерии поиска покупателя.
type CustomerCriteria struct {
	Zip   string `json:"zip"`
	Email string `json:"email"`
}

// NewCustomerFindRequest собирает запрос поиска покупателя по всем кампаниям.
func NewCustomerFindRequest(email, zip, startDate, endDate string) CustomerFindRequest {
	return CustomerFindRequest{
		CampaignID: "all",
		StartDate:  startDate,
		EndDate:    endDate,
		Criteria: CustomerCriteria{
			Zip:   zip,
			Email: email,
		},
		SearchType: "all",
		ReturnType: "customer_view",
	}
}

// OrderViewRequest — тело запроса order_view.
type OrderViewRequest struct {
	OrderID        []int `json:"order_id"`
	ReturnVariants int   `json:"return_variants"`
}

// NewOrderViewRequest собирает запрос одного заказа с раскрытием вариантов товаров.
func NewOrderViewRequest(orderID int) OrderViewRequest {
	return OrderViewRequest{
		OrderID:        []int{orderID},
		ReturnVariants: 1,
	}
}
