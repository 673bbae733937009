package model

import (
	"hotelier/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldRoomType    = "room_type"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldImages      = "images"
	FieldDescription = "description"
	FieldFloor       = "floor"
	FieldCapacity    = "capacity"
	FieldAmenities   = "amenities"
	FieldBookings    = "bookings"
)

const (
	TypeSuite    = "Suite"
	TypeSuperior = "Superior"
	TypeDeluxe   = "Deluxe"
	TypeStandard = "Standard"

	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusUnavailable = "Unavailable"
)

type Room struct {
	ID          string         `db:"id"`
	RoomNumber  string         `db:"room_number"`
	RoomType    string         `db:"room_type"`
	Price       float64        `db:"price"`
	Status      string         `db:"status"`
	Images      pq.StringArray `db:"images"`
	Description string         `db:"description"`
	Floor       int            `db:"floor"`
	Capacity    int            `db:"capacity"`
	Amenities   pq.StringArray `db:"amenities"`
	Bookings    pq.StringArray `db:"bookings"`
	model.Metadata
}
