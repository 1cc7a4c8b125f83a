package domain

import "time"

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeaway OrderType = "takeaway"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the order header.
type Order struct {
	ID               string        `json:"id"`
	OrderNumber      string        `json:"orderNumber"`
	CustomerName     string        `json:"customerName"`
	CustomerPhone    string        `json:"customerPhone"`
	CustomerEmail    string        `json:"customerEmail,omitempty"`
	OrderType        OrderType     `json:"orderType"`
	DeliveryAddress  string        `json:"deliveryAddress,omitempty"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	Notes            string        `json:"notes,omitempty"`
	SubtotalCents    int64         `json:"subtotalCents"`
	DeliveryFeeCents int64         `json:"deliveryFeeCents"`
	TotalCents       int64         `json:"totalCents"`
	Status           OrderStatus   `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type OrderLine struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ItemID         string `json:"itemId"`
	ItemName       string `json:"itemName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	LineTotalCents int64  `json:"lineTotalCents"`
}
