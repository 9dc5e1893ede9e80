package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/complexlab/rentalfleet/domain"
)

// RentalRepository implements domain.RentalRepository on MongoDB.
type RentalRepository struct {
	cars    *mongo.Collection
	orders  *mongo.Collection
	returns *mongo.Collection
}

// NewRentalRepository creates a RentalRepository.
func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{
		cars:    db.Collection(CarsCollection),
		orders:  db.Collection(OrdersCollection),
		returns: db.Collection(ReturnsCollection),
	}
}

// nextID assigns the next sequential id as count+1, mirroring the store
// this replaces. Racy under concurrent writers; acceptable for the volumes
// this service sees and pinned as a known behavior, not a guarantee.
func nextID(ctx context.Context, coll *mongo.Collection) (int, error) {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting documents in %s: %w", coll.Name(), err)
	}
	return int(count) + 1, nil
}

// GetAvailableCars lists cars open for rental.
func (r *RentalRepository) GetAvailableCars(ctx context.Context) ([]*domain.Car, error) {
	return r.findCars(ctx, bson.M{"is_available": true})
}

// GetRentedCars lists cars currently out on rental.
func (r *RentalRepository) GetRentedCars(ctx context.Context) ([]*domain.Car, error) {
	return r.findCars(ctx, bson.M{"is_available": false})
}

func (r *RentalRepository) findCars(ctx context.Context, filter bson.M) ([]*domain.Car, error) {
	cursor, err := r.cars.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("finding cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*domain.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("decoding cars: %w", err)
	}
	return cars, nil
}

// OrderCar places an order for carID and flips the car to unavailable.
func (r *RentalRepository) OrderCar(ctx context.Context, carID, userID int) error {
	var car domain.Car
	err := r.cars.FindOne(ctx, bson.M{"_id": carID}).Decode(&car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrCarUnavailable
		}
		return fmt.Errorf("looking up car: %w", err)
	}
	if !car.IsAvailable {
		return domain.ErrCarUnavailable
	}

	orderID, err := nextID(ctx, r.orders)
	if err != nil {
		return err
	}
	order := &domain.Order{
		ID:          orderID,
		CarID:       carID,
		UserID:      userID,
		OrderDate:   time.Now(),
		IsCompleted: false,
	}
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	if _, err := r.cars.UpdateOne(ctx,
		bson.M{"_id": carID},
		bson.M{"$set": bson.M{"is_available": false}},
	); err != nil {
		return fmt.Errorf("updating car availability: %w", err)
	}
	return nil
}

// ReturnCar records a return for the car attached to orderID. The car stays
// unavailable until an admin releases it, matching the workflow this
// service inherited.
func (r *RentalRepository) ReturnCar(ctx context.Context, orderID int, isDamaged bool) error {
	var order domain.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("looking up order: %w", err)
	}

	returnID, err := nextID(ctx, r.returns)
	if err != nil {
		return err
	}
	ret := &domain.Return{
		ID:         returnID,
		CarID:      order.CarID,
		ReturnDate: time.Now(),
		IsDamaged:  isDamaged,
	}
	if _, err := r.returns.InsertOne(ctx, ret); err != nil {
		return fmt.Errorf("inserting return: %w", err)
	}
	return nil
}

// GetRentalHistory lists every order ever placed.
func (r *RentalRepository) GetRentalHistory(ctx context.Context) ([]*domain.Order, error) {
	cursor, err := r.orders.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("finding orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}
	return orders, nil
}

// GetDamagedCars lists the cars that came back damaged.
func (r *RentalRepository) GetDamagedCars(ctx context.Context) ([]*domain.Car, error) {
	cursor, err := r.returns.Find(ctx, bson.M{"is_damaged": true})
	if err != nil {
		return nil, fmt.Errorf("finding damaged returns: %w", err)
	}
	defer cursor.Close(ctx)

	var rets []*domain.Return
	if err := cursor.All(ctx, &rets); err != nil {
		return nil, fmt.Errorf("decoding returns: %w", err)
	}

	cars := make([]*domain.Car, 0, len(rets))
	for _, ret := range rets {
		cars = append(cars, &domain.Car{ID: ret.CarID})
	}
	return cars, nil
}

// RejectOrder removes an order outright. Rejecting an order that does not
// exist is a no-op.
func (r *RentalRepository) RejectOrder(ctx context.Context, orderID int) error {
	res, err := r.orders.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if res.DeletedCount == 0 {
		log.Ctx(ctx).Debug().Int("order_id", orderID).Msg("reject of unknown order, nothing deleted")
	}
	return nil
}

var _ domain.RentalRepository = (*RentalRepository)(nil)
