package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/complexlab/rentalfleet/domain"
)

// PaymentRepository implements domain.PaymentRepository on MongoDB. The
// payment service keeps its own orders collection; it never reaches into
// the rental service's database.
type PaymentRepository struct {
	orders   *mongo.Collection
	payments *mongo.Collection
}

// NewPaymentRepository creates a PaymentRepository.
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		orders:   db.Collection(OrdersCollection),
		payments: db.Collection(PaymentsCollection),
	}
}

// OrderExists reports whether orderID is known to the payment service.
func (r *PaymentRepository) OrderExists(ctx context.Context, orderID int) (bool, error) {
	err := r.orders.FindOne(ctx, bson.M{"_id": orderID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up order: %w", err)
	}
	return true, nil
}

// CreatePayment persists a payment with the next sequential id.
func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	id, err := nextID(ctx, r.payments)
	if err != nil {
		return err
	}
	payment.ID = id

	if _, err := r.payments.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

var _ domain.PaymentRepository = (*PaymentRepository)(nil)
