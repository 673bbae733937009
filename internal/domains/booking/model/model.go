package model

import (
	"math"
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldUserID          = "user_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldStatus          = "status"
	FieldPaymentMethod   = "payment_method"
	FieldPaymentProof    = "payment_proof"
	FieldPaymentStatus   = "payment_status"
	FieldTotalPrice      = "total_price"
	FieldSpecialRequests = "special_requests"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusFailed    = "Failed"
	StatusCancelled = "Cancelled"
	StatusArchived  = "Archived"

	PaymentStatusPending   = "Pending"
	PaymentStatusPaid      = "Paid"
	PaymentStatusFailed    = "Failed"
	PaymentStatusCancelled = "Cancelled"

	PaymentMethodBankTransfer = "BankTransfer"

	DefaultSpecialRequests = "None"
)

// DeadStatuses are the booking states that release the room: they never block
// availability and are excluded from the overlap check.
func DeadStatuses() []string {
	return []string{StatusCancelled, StatusFailed}
}

type Booking struct {
	ID              string    `db:"id"`
	RoomID          string    `db:"room_id"`
	UserID          string    `db:"user_id"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	Status          string    `db:"status"`
	PaymentMethod   string    `db:"payment_method"`
	PaymentProof    string    `db:"payment_proof"`
	PaymentStatus   string    `db:"payment_status"`
	TotalPrice      float64   `db:"total_price"`
	SpecialRequests string    `db:"special_requests"`
	model.Metadata
}

// Duration is the stay length in nights, rounded from the raw day span
// between check-in and check-out. It is derived on demand and never stored.
func (b *Booking) Duration() int {
	return int(math.Round(b.CheckOut.Sub(b.CheckIn).Hours() / 24))
}
