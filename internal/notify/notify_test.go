package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *stubSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{MessageID: 7}, s.err
}

func sampleOrder() (domain.Order, []domain.OrderLine) {
	o := domain.Order{
		OrderNumber:      "004217",
		CustomerName:     "Ana",
		CustomerPhone:    "555-0100",
		OrderType:        domain.OrderTypeDelivery,
		DeliveryAddress:  "1 Main St",
		PaymentMethod:    domain.PaymentCash,
		SubtotalCents:    1099,
		DeliveryFeeCents: 399,
		TotalCents:       1498,
	}
	return o, []domain.OrderLine{{ItemName: "Margherita", Quantity: 1, LineTotalCents: 1099}}
}

func TestFormatOrder(t *testing.T) {
	got := FormatOrder(sampleOrder())

	assert.Contains(t, got, "New order #004217 (delivery)")
	assert.Contains(t, got, "Address: 1 Main St")
	assert.Contains(t, got, "1 x Margherita  $10.99")
	assert.Contains(t, got, "Delivery: $3.99")
	assert.Contains(t, got, "Total: $14.98")
}

func TestTelegramSendsToChat(t *testing.T) {
	s := &stubSender{}
	tg := &Telegram{api: s, chatID: 42, logger: zap.NewNop()}

	o, lines := sampleOrder()
	require.NoError(t, tg.OrderPlaced(context.Background(), o, lines))

	require.Len(t, s.sent, 1)
	msg, ok := s.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Contains(t, msg.Text, "#004217")
}

func TestTelegramSendError(t *testing.T) {
	tg := &Telegram{api: &stubSender{err: errors.New("429")}, chatID: 42, logger: zap.NewNop()}
	o, lines := sampleOrder()
	assert.Error(t, tg.OrderPlaced(context.Background(), o, lines))
}

type blockingSender struct {
	release chan struct{}
}

func (s *blockingSender) Send(tgbotapi.Chattable) (tgbotapi.Message, error) {
	<-s.release
	return tgbotapi.Message{}, nil
}

func TestTelegramHonoursDeadline(t *testing.T) {
	s := &blockingSender{release: make(chan struct{})}
	defer close(s.release)
	tg := &Telegram{api: s, chatID: 42, logger: zap.NewNop()}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	o, lines := sampleOrder()

	start := time.Now()
	err := tg.OrderPlaced(ctx, o, lines)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNop(t *testing.T) {
	o, lines := sampleOrder()
	assert.NoError(t, Nop{}.OrderPlaced(context.Background(), o, lines))
}
