package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses shown in the order history.
const (
	OrderStatusDelivered  = "Delivered"
	OrderStatusInProgress = "In Progress"
	OrderStatusCancelled  = "Cancelled"
)

// Order is a past order shown in the history list.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	PlacedOn        time.Time       `json:"date"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalPacks      int             `json:"totalPacks"`
	CategoryID      string          `json:"category"`
	Image           string          `json:"image,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusDelivered, OrderStatusInProgress, OrderStatusCancelled:
		return true
	}
	return false
}
