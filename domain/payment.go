package domain

import (
	"context"
	"time"
)

// Payment records a charge against a rental order.
type Payment struct {
	ID          int       `bson:"_id" json:"id"`
	OrderID     int       `bson:"order_id" json:"orderId"`
	Amount      float64   `bson:"amount" json:"amount"`
	PaymentDate time.Time `bson:"payment_date" json:"paymentDate"`
}

// PaymentRepository is the persistence boundary of the payment service.
// The payment service keeps its own view of orders, so existence checks
// do not call across service boundaries.
type PaymentRepository interface {
	// OrderExists reports whether orderID is known to the payment service.
	OrderExists(ctx context.Context, orderID int) (bool, error)
	// CreatePayment persists a payment with the next sequential id.
	CreatePayment(ctx context.Context, payment *Payment) error
}
