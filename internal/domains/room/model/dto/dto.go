package dto

import (
	"mime/multipart"

	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	RoomNumber  string   `json:"roomNumber"  validate:"required,max=20"`
	RoomType    string   `json:"roomType"    validate:"required,oneof=Suite Superior Deluxe Standard"`
	Price       float64  `json:"price"       validate:"required,min=0"`
	Status      string   `json:"status"      validate:"omitempty,oneof=Available Maintenance Unavailable"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Floor       int      `json:"floor"       validate:"omitempty,min=0"`
	Capacity    int      `json:"capacity"    validate:"required,min=1"`
	Amenities   []string `json:"amenities"   validate:"omitempty,dive,max=100"`

	Images     []*multipart.FileHeader `json:"-"`
	ImageFiles []multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURLs []string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  c.RoomNumber,
		RoomType:    c.RoomType,
		Price:       c.Price,
		Status:      status,
		Images:      pq.StringArray(imageURLs),
		Description: c.Description,
		Floor:       c.Floor,
		Capacity:    c.Capacity,
		Amenities:   pq.StringArray(c.Amenities),
		Bookings:    pq.StringArray{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber  *string  `db:"room_number" json:"roomNumber"  validate:"omitempty,max=20"`
	RoomType    string   `db:"room_type"   json:"roomType"    validate:"omitempty,oneof=Suite Superior Deluxe Standard"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Status      string   `db:"status"      json:"status"      validate:"omitempty,oneof=Available Maintenance Unavailable"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	Floor       *int     `db:"floor"       json:"floor"       validate:"omitempty,min=0"`
	Capacity    *int     `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Amenities   []string `json:"amenities"                    validate:"omitempty,dive,max=100"`

	Images     []*multipart.FileHeader `json:"-"`
	ImageFiles []multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	RoomNumber  string   `json:"roomNumber"`
	RoomType    string   `json:"roomType"`
	Price       float64  `json:"price"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Floor       int      `json:"floor"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Bookings    []string `json:"bookings"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Price = model.Price
	r.Status = model.Status
	r.Images = model.Images
	r.Description = model.Description
	r.Floor = model.Floor
	r.Capacity = model.Capacity
	r.Amenities = model.Amenities
	r.Bookings = model.Bookings
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms       []RoomResponse `json:"rooms"`
	TotalRooms  int            `json:"totalRooms"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, total, page, limit int) {
	r.TotalRooms = total
	r.TotalPages = shared.CalculateTotalPage(total, limit)
	r.CurrentPage = page

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
