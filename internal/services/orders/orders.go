// Package orders загружает заказы покупателя из внешней системы и приводит их
// к доменной модели. Ошибка одного заказа не прерывает загрузку остальных.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/subscription-portal/internal/decode"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/stickyio"
)

// Причины пропуска заказа.
const (
	ReasonInvalidID = "invalid_order_id"
	ReasonCanceled  = "canceled"
	ReasonTransport = "request_failed"
	ReasonAPI       = "api_error"
)

// ErrInvalidOrderID возвращается для идентификатора, который не является целым числом.
var ErrInvalidOrderID = errors.New("order id is not an integer")

// Poster отправляет запрос во внешнюю систему.
type Poster interface {
	Post(ctx context.Context, path string, body any) (decode.Document, error)
}

// Skipped описывает заказ, не попавший в результат.
type Skipped struct {
	OrderID string
	Reason  string
	Err     error
}

// Result — итог нормализации: успешно загруженные заказы в порядке входных
// идентификаторов и список пропущенных.
type Result struct {
	Orders  []models.Order
	Skipped []Skipped
}

// SkippedIDs возвращает идентификаторы пропущенных заказов.
func (r Result) SkippedIDs() []string {
	ids := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		ids = append(ids, s.OrderID)
	}
	return ids
}

// Options параметры параллельной загрузки.
type Options struct {
	Concurrency int     // Максимум одновременных запросов
	RPS         float64 // Запросов в секунду, 0 — без ограничения
	Burst       int
}

// Normalizer загружает и нормализует заказы.
type Normalizer struct {
	client      Poster
	limiter     *rate.Limiter
	concurrency int
	log         *slog.Logger
}

// NewNormalizer создает новый экземпляр Normalizer.
func NewNormalizer(client Poster, opts Options, log *slog.Logger) *Normalizer {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	limit := rate.Limit(opts.RPS)
	if opts.RPS <= 0 {
		limit = rate.Inf
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	return &Normalizer{
		client:      client,
		limiter:     rate.NewLimiter(limit, burst),
		concurrency: concurrency,
		log:         log,
	}
}

type outcome struct {
	order   models.Order
	skipped *Skipped
}

// NormalizeOrders загружает каждый заказ отдельным запросом order_view.
// Запросы выполняются параллельно, результат собирается в порядке ids.
// Заказы, которые не удалось загрузить, попадают в Result.Skipped.
func (n *Normalizer) NormalizeOrders(ctx context.Context, ids []string) Result {
	const op = "orders.NormalizeOrders"
	log := n.log.With(slog.String("op", op))

	outcomes := make([]outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(n.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = n.fetch(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{
		Orders:  make([]models.Order, 0, len(ids)),
		Skipped: []Skipped{},
	}
	for _, o := range outcomes {
		if o.skipped != nil {
			log.Warn("order skipped",
				sl.OrderID(o.skipped.OrderID),
				slog.String("reason", o.skipped.Reason),
				sl.Err(o.skipped.Err),
			)
			res.Skipped = append(res.Skipped, *o.skipped)
			continue
		}
		res.Orders = append(res.Orders, o.order)
	}

	log.Info("orders normalized",
		slog.Int("requested", len(ids)),
		slog.Int("loaded", len(res.Orders)),
		slog.Int("skipped", len(res.Skipped)),
	)
	return res
}

func (n *Normalizer) fetch(ctx context.Context, id string) outcome {
	skip := func(reason string, err error) outcome {
		return outcome{skipped: &Skipped{OrderID: id, Reason: reason, Err: err}}
	}

	numericID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return skip(ReasonInvalidID, fmt.Errorf("%w: %q", ErrInvalidOrderID, id))
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return skip(ReasonCanceled, err)
	}

	doc, err := n.client.Post(ctx, stickyio.PathOrderView, stickyio.NewOrderViewRequest(numericID))
	if err != nil {
		return skip(ReasonTransport, err)
	}
	if code := doc.ResponseCode(); code != stickyio.SuccessCode {
		return skip(ReasonAPI, &stickyio.APIError{Path: stickyio.PathOrderView, Code: code})
	}

	return outcome{order: decode.Order(doc)}
}
