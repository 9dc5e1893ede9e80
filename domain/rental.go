package domain

import (
	"context"
	"time"
)

// Car is a rentable vehicle.
type Car struct {
	ID          int    `bson:"_id" json:"id"`
	Brand       string `bson:"brand" json:"brand"`
	Model       string `bson:"model" json:"model"`
	IsAvailable bool   `bson:"is_available" json:"isAvailable"`
}

// Order records a rental of one car by one user.
type Order struct {
	ID          int        `bson:"_id" json:"id"`
	CarID       int        `bson:"car_id" json:"carId"`
	UserID      int        `bson:"user_id" json:"userId"`
	OrderDate   time.Time  `bson:"order_date" json:"orderDate"`
	ReturnDate  *time.Time `bson:"return_date,omitempty" json:"returnDate,omitempty"`
	IsCompleted bool       `bson:"is_completed" json:"isCompleted"`
}

// Return records a car coming back from a rental.
type Return struct {
	ID         int       `bson:"_id" json:"id"`
	CarID      int       `bson:"car_id" json:"carId"`
	ReturnDate time.Time `bson:"return_date" json:"returnDate"`
	IsDamaged  bool      `bson:"is_damaged" json:"isDamaged"`
}

// RentalRepository is the persistence boundary of the car-rental service.
// The authorization protocol never depends on it; it exists so gated
// operations have real work to do.
type RentalRepository interface {
	GetAvailableCars(ctx context.Context) ([]*Car, error)
	// OrderCar places an order for carID. Returns ErrCarUnavailable when
	// the car is missing or already rented. Ordering flips the car to
	// unavailable.
	OrderCar(ctx context.Context, carID, userID int) error
	// ReturnCar records a return for the car attached to orderID. Returns
	// ErrOrderNotFound when the order does not exist. The car is not
	// flipped back to available; rented stock is released through the
	// admin panel.
	ReturnCar(ctx context.Context, orderID int, isDamaged bool) error
	GetRentedCars(ctx context.Context) ([]*Car, error)
	GetRentalHistory(ctx context.Context) ([]*Order, error)
	GetDamagedCars(ctx context.Context) ([]*Car, error)
	// RejectOrder removes an order outright. Idempotent: rejecting a
	// missing order is not an error.
	RejectOrder(ctx context.Context, orderID int) error
}
