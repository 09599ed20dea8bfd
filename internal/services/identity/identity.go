// Package identity находит покупателя во внешней системе по email и ZIP.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/subscription-portal/internal/decode"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/stickyio"
)

// ErrAmbiguousOrNotFound возвращается, если поиск нашёл не ровно одного покупателя.
// Внешняя система не позволяет отличить «не найден» от «найдено несколько».
var ErrAmbiguousOrNotFound = errors.New("customer not found or ambiguous")

// Poster отправляет запрос во внешнюю систему.
type Poster interface {
	Post(ctx context.Context, path string, body any) (decode.Document, error)
}

// DateRange — диапазон дат поиска в формате MM/DD/YYYY.
type DateRange struct {
	Start string
	End   string
}

// Resolver ищет покупателя по email и ZIP.
type Resolver struct {
	client Poster
	dates  DateRange
	log    *slog.Logger
}

// NewResolver создаёт новый экземпляр Resolver.
func NewResolver(client Poster, dates DateRange, log *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		dates:  dates,
		log:    log,
	}
}

// ResolveCustomer выполняет один запрос customer_find и возвращает покупателя,
// если найдено ровно одно совпадение. Повторов нет.
func (r *Resolver) ResolveCustomer(ctx context.Context, email, zip string) (models.Customer, error) {
	const op = "identity.ResolveCustomer"
	log := r.log.With(slog.String("op", op))

	req := stickyio.NewCustomerFindRequest(email, zip, r.dates.Start, r.dates.End)
	doc, err := r.client.Post(ctx, stickyio.PathCustomerFind, req)
	if err != nil {
		log.Error("customer lookup failed", sl.Err(err))
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	if code := doc.ResponseCode(); code != stickyio.SuccessCode {
		log.Error("customer lookup rejected", slog.String("response_code", code))
		return models.Customer{}, fmt.Errorf("%s: %w", op, &stickyio.APIError{Path: stickyio.PathCustomerFind, Code: code})
	}

	total, ok := decode.TotalCustomers(doc)
	if !ok || total != 1 {
		log.Info("customer lookup did not yield a single match", slog.Int("total", total), slog.Bool("parsed", ok))
		return models.Customer{}, fmt.Errorf("%s: %w", op, ErrAmbiguousOrNotFound)
	}

	customer, err := decode.Customer(doc)
	if err != nil {
		log.Error("failed to decode customer", sl.Err(err))
		return models.Customer{}, fmt.Errorf("%s: %w: %w", op, stickyio.ErrMalformedResponse, err)
	}

	log.Info("customer resolved",
		slog.String("customer_id", customer.CustomerID),
		slog.Int("orders", len(customer.Orders)),
	)
	return customer, nil
}
