package dto

import (
	"mime/multipart"
	"time"

	"hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	userModel "hotelier/internal/domains/user/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"

	"github.com/google/uuid"
)

const dateOnlyLayout = "2006-01-02"

// parseDate accepts the date-only form clients send as well as a full
// RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := timezone.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}

	return timezone.Parse(time.RFC3339, value)
}

type CreateBookingRequest struct {
	CheckIn         string  `json:"checkIn"         validate:"required"`
	CheckOut        string  `json:"checkOut"        validate:"required"`
	PaymentMethod   string  `json:"paymentMethod"   validate:"omitempty,oneof=BankTransfer"`
	TotalPrice      float64 `json:"totalPrice"      validate:"omitempty,gte=0"`
	SpecialRequests string  `json:"specialRequests" validate:"omitempty,max=2000"`

	PaymentProof     *multipart.FileHeader `json:"-"`
	PaymentProofFile multipart.File        `json:"-"`
}

// ToModel parses and validates the stay window, then builds the booking in
// its initial Pending/Pending state.
func (c *CreateBookingRequest) ToModel(user, roomID, proofURL string, pricePerNight float64) (model.Booking, error) {
	checkIn, err := parseDate(c.CheckIn)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("invalid check-in date") //nolint:wrapcheck
	}

	checkOut, err := parseDate(c.CheckOut)
	if err != nil {
		return model.Booking{}, failure.BadRequestFromString("invalid check-out date") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return model.Booking{}, failure.BadRequestFromString("check-out date must be after check-in date") //nolint:wrapcheck
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())

	if checkIn.Before(today) {
		return model.Booking{}, failure.BadRequestFromString("check-in date cannot be in the past") //nolint:wrapcheck
	}

	specialRequests := c.SpecialRequests
	if specialRequests == "" {
		specialRequests = model.DefaultSpecialRequests
	}

	booking := model.Booking{
		ID:              uuid.NewString(),
		RoomID:          roomID,
		UserID:          user,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          model.StatusPending,
		PaymentMethod:   c.PaymentMethod,
		PaymentProof:    proofURL,
		PaymentStatus:   model.PaymentStatusPending,
		SpecialRequests: specialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	// A client-stated total wins; otherwise it derives from the room rate.
	booking.TotalPrice = c.TotalPrice
	if booking.TotalPrice == 0 {
		booking.TotalPrice = pricePerNight * float64(booking.Duration())
	}

	return booking, nil
}

// UpdateBookingRequest is the partial booking patch. Dates travel as strings
// and are merged by the service after parsing; everything else maps straight
// onto columns.
type UpdateBookingRequest struct {
	Status          string   `db:"status"           json:"status"          validate:"omitempty,oneof=Pending Confirmed Failed Cancelled Archived"`
	PaymentMethod   string   `db:"payment_method"   json:"paymentMethod"   validate:"omitempty,oneof=BankTransfer"`
	PaymentProof    string   `db:"payment_proof"    json:"paymentProof"    validate:"omitempty,max=2048"`
	PaymentStatus   string   `db:"payment_status"   json:"paymentStatus"   validate:"omitempty,oneof=Pending Paid Failed Cancelled"`
	TotalPrice      *float64 `db:"total_price"      json:"totalPrice"      validate:"omitempty,gte=0"`
	SpecialRequests string   `db:"special_requests" json:"specialRequests" validate:"omitempty,max=2000"`
	CheckIn         string   `json:"checkIn"                               validate:"omitempty"`
	CheckOut        string   `json:"checkOut"                              validate:"omitempty"`
}

// ParseDates returns the parsed check-in/check-out overrides, nil when absent.
func (u *UpdateBookingRequest) ParseDates() (checkIn, checkOut *time.Time, err error) {
	if u.CheckIn != "" {
		t, err := parseDate(u.CheckIn)
		if err != nil {
			return nil, nil, failure.BadRequestFromString("invalid check-in date") //nolint:wrapcheck
		}

		checkIn = &t
	}

	if u.CheckOut != "" {
		t, err := parseDate(u.CheckOut)
		if err != nil {
			return nil, nil, failure.BadRequestFromString("invalid check-out date") //nolint:wrapcheck
		}

		checkOut = &t
	}

	return checkIn, checkOut, nil
}

type RoomSummary struct {
	ID         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
	RoomType   string `json:"roomType"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID              string      `json:"id"`
	Room            RoomSummary `json:"room"`
	User            UserSummary `json:"user"`
	CheckIn         string      `json:"checkIn"`
	CheckOut        string      `json:"checkOut"`
	Duration        int         `json:"duration"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentProof    string      `json:"paymentProof"`
	PaymentStatus   string      `json:"paymentStatus"`
	TotalPrice      float64     `json:"totalPrice"`
	SpecialRequests string      `json:"specialRequests"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, room roomModel.Room, user userModel.User) {
	r.ID = booking.ID
	r.Room = RoomSummary{ID: room.ID, RoomNumber: room.RoomNumber, RoomType: room.RoomType}
	r.User = UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	r.CheckIn = timezone.Format(booking.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(booking.CheckOut, constant.DateFormat)
	r.Duration = booking.Duration()
	r.Status = booking.Status
	r.PaymentMethod = booking.PaymentMethod
	r.PaymentProof = booking.PaymentProof
	r.PaymentStatus = booking.PaymentStatus
	r.TotalPrice = booking.TotalPrice
	r.SpecialRequests = booking.SpecialRequests
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings      []BookingResponse `json:"bookings"`
	TotalBookings int               `json:"totalBookings"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
}

func (r *GetBookingsResponse) Paginate(total, page, limit int) {
	r.TotalBookings = total
	r.TotalPages = shared.CalculateTotalPage(total, limit)
	r.CurrentPage = page
}

// BookedDate is one occupied window of a room, status included so clients can
// grey out live holds differently from dead ones.
type BookedDate struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
}

func (b *BookedDate) FromModel(booking model.Booking) {
	b.CheckIn = timezone.Format(booking.CheckIn, constant.DateFormat)
	b.CheckOut = timezone.Format(booking.CheckOut, constant.DateFormat)
	b.Status = booking.Status
}

// ListBookingsFilter carries the raw query filters of the admin listing.
// RoomNumber and UserName are resolved to ids by the service before the SQL
// filter is built.
type ListBookingsFilter struct {
	RoomNumber    string
	UserName      string
	BookingStatus string
	PaymentStatus string
	BookingID     string
}
