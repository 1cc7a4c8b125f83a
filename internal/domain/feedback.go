package domain

import "time"

type Feedback struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Rating      int       `json:"rating"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Message     string    `json:"feedback"`
	CreatedAt   time.Time `json:"createdAt"`
}
