// Package order turns a cart into a persisted order.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/fallback"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/service/cart"

	"go.uber.org/zap"
)

// maxNumberAttempts bounds regeneration of an order number that collides
// with an existing order.
const maxNumberAttempts = 3

const notifyTimeout = 5 * time.Second

type headerStore interface {
	Insert(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type lineStore interface {
	InsertMany(ctx context.Context, lines []domain.OrderLine) ([]domain.OrderLine, error)
}

// Stores is one persistence backend for orders.
type Stores struct {
	Orders headerStore
	Lines  lineStore
}

// Notifier tells the restaurant about a new order.
type Notifier interface {
	OrderPlaced(ctx context.Context, o domain.Order, lines []domain.OrderLine) error
}

type Config struct {
	DeliveryFeeCents int64
	NumberDigits     int
}

type Service struct {
	primary  Stores
	fallback Stores
	notifier Notifier
	numbers  func() (string, error)
	fee      int64
	logger   *zap.Logger
	now      func() time.Time

	notifyTimeout time.Duration
}

func New(primary, secondary Stores, notifier Notifier, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		primary:  primary,
		fallback: secondary,
		notifier: notifier,
		numbers:  NewNumberGenerator(cfg.NumberDigits).Next,
		fee:      cfg.DeliveryFeeCents,
		logger:   logging.OrNop(logger),
		now:      time.Now,

		notifyTimeout: notifyTimeout,
	}
}

type CheckoutInput struct {
	CustomerName    string               `json:"customerName"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerEmail   string               `json:"customerEmail"`
	OrderType       domain.OrderType     `json:"orderType"`
	DeliveryAddress string               `json:"deliveryAddress"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	Notes           string               `json:"notes"`
}

// Receipt is what the shopper sees after a successful submission.
// Degraded is set when any part of the order went to the fallback store.
type Receipt struct {
	OrderNumber      string           `json:"orderNumber"`
	OrderID          string           `json:"orderId"`
	OrderType        domain.OrderType `json:"orderType"`
	SubtotalCents    int64            `json:"subtotalCents"`
	DeliveryFeeCents int64            `json:"deliveryFeeCents"`
	TotalCents       int64            `json:"totalCents"`
	Degraded         bool             `json:"degraded"`
}

func (in *CheckoutInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.OrderType == "" {
		in.OrderType = domain.OrderTypeTakeaway
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = domain.PaymentCash
	}
}

func validate(c *cart.Store, in CheckoutInput) error {
	if c.IsEmpty() {
		return domain.NewValidationError("empty cart")
	}
	if in.OrderType == domain.OrderTypeDelivery && in.DeliveryAddress == "" {
		return domain.NewValidationError("missing address")
	}
	if in.CustomerName == "" {
		return domain.NewValidationError("missing name")
	}
	if in.CustomerPhone == "" {
		return domain.NewValidationError("missing phone")
	}
	if in.OrderType != domain.OrderTypeDelivery && in.OrderType != domain.OrderTypeTakeaway {
		return domain.NewValidationError("invalid order type")
	}
	if in.PaymentMethod != domain.PaymentCash && in.PaymentMethod != domain.PaymentCard {
		return domain.NewValidationError("invalid payment method")
	}
	return nil
}

// DeliveryFee is the flat fee for orderType.
func (s *Service) DeliveryFee(orderType domain.OrderType) int64 {
	if orderType == domain.OrderTypeDelivery {
		return s.fee
	}
	return 0
}

// Submit validates the checkout, persists the header and lines with
// fallback, then clears the cart. Only validation failures and failures of
// the fallback itself are returned.
func (s *Service) Submit(ctx context.Context, c *cart.Store, in CheckoutInput) (*Receipt, error) {
	in.normalize()
	if err := validate(c, in); err != nil {
		return nil, err
	}

	number, err := s.numbers()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}
	now := s.now().UTC()
	subtotal := c.Subtotal()
	fee := s.DeliveryFee(in.OrderType)
	header := domain.Order{
		OrderNumber:      number,
		CustomerName:     in.CustomerName,
		CustomerPhone:    in.CustomerPhone,
		CustomerEmail:    in.CustomerEmail,
		OrderType:        in.OrderType,
		DeliveryAddress:  in.DeliveryAddress,
		PaymentMethod:    in.PaymentMethod,
		Notes:            in.Notes,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: fee,
		TotalCents:       subtotal + fee,
		Status:           domain.OrderStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.OrderType != domain.OrderTypeDelivery {
		header.DeliveryAddress = ""
	}

	saved := fallback.Run(ctx, s.logger, "orders.insert",
		func(ctx context.Context) (*domain.Order, error) { return s.insertHeader(ctx, &header) },
		func(ctx context.Context) (*domain.Order, error) { return s.fallback.Orders.Insert(ctx, header) },
	)
	if saved.Err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, saved.Err)
	}
	order := *saved.Value

	cartLines := c.Lines()
	lines := make([]domain.OrderLine, 0, len(cartLines))
	for _, l := range cartLines {
		lines = append(lines, domain.OrderLine{
			OrderID:        order.ID,
			ItemID:         l.ItemID,
			ItemName:       l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.PriceCents,
			LineTotalCents: l.TotalCents(),
		})
	}
	savedLines := fallback.Run(ctx, s.logger, "order_items.insert",
		func(ctx context.Context) ([]domain.OrderLine, error) { return s.primary.Lines.InsertMany(ctx, lines) },
		func(ctx context.Context) ([]domain.OrderLine, error) { return s.fallback.Lines.InsertMany(ctx, lines) },
	)
	if savedLines.Err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, savedLines.Err)
	}

	c.Clear(ctx)
	s.notify(ctx, order, savedLines.Value)

	s.logger.Info("order submitted",
		zap.String("order_number", order.OrderNumber),
		zap.String("order_id", order.ID),
		zap.String("order_type", string(order.OrderType)),
		zap.Int64("total_cents", order.TotalCents),
		zap.Bool("degraded", saved.Degraded || savedLines.Degraded),
	)
	return &Receipt{
		OrderNumber:      order.OrderNumber,
		OrderID:          order.ID,
		OrderType:        order.OrderType,
		SubtotalCents:    order.SubtotalCents,
		DeliveryFeeCents: order.DeliveryFeeCents,
		TotalCents:       order.TotalCents,
		Degraded:         saved.Degraded || savedLines.Degraded,
	}, nil
}

// insertHeader writes to the primary store, drawing a new order number when
// the current one is taken. header keeps the last number tried.
func (s *Service) insertHeader(ctx context.Context, header *domain.Order) (*domain.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		saved, err := s.primary.Orders.Insert(ctx, *header)
		if err == nil {
			return saved, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		s.logger.Debug("order number taken, regenerating", zap.String("order_number", header.OrderNumber), zap.Int("attempt", attempt))
		number, err := s.numbers()
		if err != nil {
			return nil, err
		}
		header.OrderNumber = number
	}
	return nil, lastErr
}

// notify waits at most notifyTimeout for the notifier. A notifier that
// ignores its context keeps running in the background.
func (s *Service) notify(ctx context.Context, o domain.Order, lines []domain.OrderLine) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- s.notifier.OrderPlaced(ctx, o, lines)
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Warn("order notification failed", zap.String("order_number", o.OrderNumber), zap.Error(err))
		}
	case <-ctx.Done():
		s.logger.Warn("order notification timed out", zap.String("order_number", o.OrderNumber), zap.Duration("timeout", s.notifyTimeout))
	}
}
