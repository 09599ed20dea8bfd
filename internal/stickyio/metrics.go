package stickyio

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/subscription-portal/internal/decode"
)

// Poster отправляет запрос во внешнюю систему и возвращает ответ.
type Poster interface {
	Post(ctx context.Context, path string, body any) (decode.Document, error)
}

// Значения метки outcome.
const (
	OutcomeOK        = "ok"
	OutcomeAPIError  = "api_error"
	OutcomeTransport = "transport_error"
)

// Metrics — метрики запросов к внешней системе.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics создаёт и регистрирует метрики в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "stickyio",
			Name:      "requests_total",
			Help:      "Number of requests to the order management API by endpoint and outcome.",
		}, []string{"path", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "stickyio",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests to the order management API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// InstrumentedPoster считает запросы и их длительность.
type InstrumentedPoster struct {
	next    Poster
	metrics *Metrics
	now     func() time.Time
}

// Instrument оборачивает next метриками.
func Instrument(next Poster, metrics *Metrics) *InstrumentedPoster {
	return &InstrumentedPoster{
		next:    next,
		metrics: metrics,
		now:     time.Now,
	}
}

// Post вызывает следующий Poster и записывает результат в метрики.
func (p *InstrumentedPoster) Post(ctx context.Context, path string, body any) (decode.Document, error) {
	start := p.now()
	doc, err := p.next.Post(ctx, path, body)
	p.metrics.duration.WithLabelValues(path).Observe(p.now().Sub(start).Seconds())
	p.metrics.requests.WithLabelValues(path, outcome(doc, err)).Inc()
	return doc, err
}

func outcome(doc decode.Document, err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	case err != nil:
		return OutcomeTransport
	case doc.ResponseCode() != SuccessCode:
		return OutcomeAPIError
	default:
		return OutcomeOK
	}
}
