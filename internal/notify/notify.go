// Package notify tells the restaurant about new orders.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Nop discards notifications.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, domain.Order, []domain.OrderLine) error { return nil }

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts an order summary to the kitchen chat.
type Telegram struct {
	api    sender
	chatID int64
	logger *zap.Logger
}

const sendTimeout = 10 * time.Second

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	client := &http.Client{Timeout: sendTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, logger: logging.OrNop(logger)}, nil
}

func (t *Telegram) OrderPlaced(ctx context.Context, o domain.Order, lines []domain.OrderLine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	type result struct {
		msg tgbotapi.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := t.api.Send(tgbotapi.NewMessage(t.chatID, FormatOrder(o, lines)))
		done <- result{msg, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return fmt.Errorf("telegram send order %s: %w", o.OrderNumber, r.err)
		}
		t.logger.Debug("order notification sent", zap.String("order_number", o.OrderNumber), zap.Int("message_id", r.msg.MessageID))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram send order %s: %w", o.OrderNumber, ctx.Err())
	}
}

// FormatOrder renders the plain-text kitchen ticket.
func FormatOrder(o domain.Order, lines []domain.OrderLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%s (%s)\n", o.OrderNumber, o.OrderType)
	fmt.Fprintf(&b, "Customer: %s, %s\n", o.CustomerName, o.CustomerPhone)
	if o.OrderType == domain.OrderTypeDelivery {
		fmt.Fprintf(&b, "Address: %s\n", o.DeliveryAddress)
	}
	fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMethod)
	b.WriteString("\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "%d x %s  $%s\n", l.Quantity, l.ItemName, domain.FormatCents(l.LineTotalCents))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", domain.FormatCents(o.SubtotalCents))
	if o.DeliveryFeeCents > 0 {
		fmt.Fprintf(&b, "Delivery: $%s\n", domain.FormatCents(o.DeliveryFeeCents))
	}
	fmt.Fprintf(&b, "Total: $%s", domain.FormatCents(o.TotalCents))
	if o.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", o.Notes)
	}
	return b.String()
}
