package echo

// Request envelopes shared with the edge gateway. Protected POST bodies
// carry the session token inline; admin GETs carry it as the `token` query
// parameter instead.

// UserModel is the login and sign-up body.
type UserModel struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OrderModel is the car-order body.
type OrderModel struct {
	Token  string `json:"token"`
	CarID  int    `json:"carId"`
	UserID int    `json:"userId"`
}

// ReturnModel is the car-return body.
type ReturnModel struct {
	Token     string `json:"token"`
	OrderID   int    `json:"orderId"`
	IsDamaged bool   `json:"isDamaged"`
}

// PaymentModel is the payment body.
type PaymentModel struct {
	Token   string  `json:"token"`
	OrderID int     `json:"orderId"`
	Amount  float64 `json:"amount"`
}

// TokenResponse is the login success body.
type TokenResponse struct {
	SessionToken string `json:"sessionToken"`
}

// Client-facing rejection strings. These are part of the external contract
// and relayed verbatim through the gateway.
const (
	MsgUserExists   = "This model already exists."
	MsgDeadSession  = "Token is not existing or expired"
	MsgNotAdmin     = "You do not have access to admin panel"
	MsgCarOrdered   = "Car successfully ordered."
	MsgCarNotFree   = "Car not available for order."
	MsgCarReturned  = "Car successfully returned."
	MsgBadReturn    = "Order or Car not found."
	MsgOrderMissing = "Order doesn't exist"
	MsgOrderReject  = "Order rejected successfully."
	MsgPaymentOK    = "Payment processed successfully."
)
