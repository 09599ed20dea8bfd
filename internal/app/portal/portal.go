// Package portal связывает ядро с внешним интерфейсом: проверяет данные входа,
// переводит ошибки в сообщения для пользователя и собирает данные личного кабинета.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/services/identity"
	"github.com/magabrotheeeer/subscription-portal/internal/services/orders"
	"github.com/magabrotheeeer/subscription-portal/internal/services/schedule"
	"github.com/magabrotheeeer/subscription-portal/internal/services/view"
)

// Сообщения для пользователя.
const (
	MsgMissingFields   = "Please fill in both email and ZIP code"
	MsgNotFound        = "No account found with this email and ZIP code. If you have more than one account, please contact support."
	MsgLoginFailed     = "Login failed. Please try again."
	MsgDashboardFailed = "Failed to load order details"
)

// ErrInvalidInput возвращается, если email или ZIP не прошли проверку.
var ErrInvalidInput = errors.New("invalid login input")

// Resolver находит покупателя по email и ZIP.
type Resolver interface {
	ResolveCustomer(ctx context.Context, email, zip string) (models.Customer, error)
}

// Normalizer загружает заказы покупателя.
type Normalizer interface {
	NormalizeOrders(ctx context.Context, ids []string) orders.Result
}

// LoginRequest — данные формы входа.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Zip   string `json:"zip" validate:"required"`
}

// Dashboard — данные личного кабинета.
type Dashboard struct {
	Customer models.Customer
	Orders   []models.Order
	Skipped  []orders.Skipped
	Upcoming []models.UpcomingPayment
	Next     *models.NextPayment
	Rows     []models.FlattenedProductRow // Строки после применения поискового запроса
	Total    int                          // Количество строк до фильтрации
	Query    string                       // Поисковый запрос, применённый к строкам
	Banner   string                       // Сообщение об ошибке загрузки, пустое при успехе
}

// Portal обслуживает одну пользовательскую сессию.
type Portal struct {
	resolver   Resolver
	normalizer Normalizer
	validate   *validator.Validate
	sessionID  string
	log        *slog.Logger
}

// New создает Portal с новым идентификатором сессии.
func New(resolver Resolver, normalizer Normalizer, log *slog.Logger) *Portal {
	sessionID := uuid.NewString()
	return &Portal{
		resolver:   resolver,
		normalizer: normalizer,
		validate:   validator.New(),
		sessionID:  sessionID,
		log:        log.With(slog.String("session_id", sessionID)),
	}
}

// SessionID возвращает идентификатор сессии, добавляемый ко всем записям лога.
func (p *Portal) SessionID() string {
	return p.sessionID
}

// Login проверяет данные формы и ищет покупателя.
func (p *Portal) Login(ctx context.Context, req LoginRequest) (models.Customer, error) {
	const op = "portal.Login"
	log := p.log.With(slog.String("op", op))

	req.Email = strings.TrimSpace(req.Email)
	req.Zip = strings.TrimSpace(req.Zip)
	if err := p.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		return models.Customer{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	customer, err := p.resolver.ResolveCustomer(ctx, req.Email, req.Zip)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		return models.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("login success", slog.String("customer_id", customer.CustomerID))
	return customer, nil
}

// Dashboard загружает заказы покупателя и строит график платежей и историю.
// now задаёт момент, относительно которого считаются будущие списания.
func (p *Portal) Dashboard(ctx context.Context, customer models.Customer, now time.Time, query string) Dashboard {
	const op = "portal.Dashboard"
	log := p.log.With(slog.String("op", op), slog.String("customer_id", customer.CustomerID))

	d := Dashboard{
		Customer: customer,
		Orders:   []models.Order{},
		Skipped:  []orders.Skipped{},
		Upcoming: []models.UpcomingPayment{},
		Rows:     []models.FlattenedProductRow{},
		Query:    strings.TrimSpace(query),
	}
	if !customer.HasOrders() {
		log.Info("customer has no orders")
		return d
	}

	res := p.normalizer.NormalizeOrders(ctx, customer.Orders)
	d.Skipped = res.Skipped

	if len(res.Orders) == 0 && len(res.Skipped) > 0 {
		log.Error("no orders could be loaded", slog.Int("skipped", len(res.Skipped)))
		d.Banner = MsgDashboardFailed
		return d
	}
	// Загрузка прервана: показываем то, что успели получить, и сообщение об ошибке.
	if canceled := countCanceled(res.Skipped); canceled > 0 {
		log.Error("order loading interrupted", slog.Int("canceled", canceled))
		d.Banner = MsgDashboardFailed
	}

	d.Orders = res.Orders
	d.Upcoming = schedule.DeriveUpcomingPayments(res.Orders, now)
	if next, ok := schedule.NextPayment(d.Upcoming, now); ok {
		d.Next = &next
	}
	all := view.FlattenProducts(res.Orders)
	d.Total = len(all)
	d.Rows = view.FilterRows(all, query)

	log.Info("dashboard loaded",
		slog.Int("orders", len(d.Orders)),
		slog.Int("upcoming", len(d.Upcoming)),
		slog.Int("rows", len(d.Rows)),
	)
	return d
}

func countCanceled(skipped []orders.Skipped) int {
	n := 0
	for _, s := range skipped {
		if s.Reason == orders.ReasonCanceled {
			n++
		}
	}
	return n
}

// UserMessage переводит ошибку входа в сообщение для пользователя.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return MsgMissingFields
	case errors.Is(err, identity.ErrAmbiguousOrNotFound):
		return MsgNotFound
	default:
		return MsgLoginFailed
	}
}
