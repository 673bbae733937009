package dto

import (
	"mime/multipart"

	"hotelier/internal/domains/user/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
)

type UserResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        *string `json:"address,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Role           string  `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.ProfilePicture = model.ProfilePicture
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserInfoRequest is the partial profile update. Absent fields leave the
// stored record untouched; a name change also recomputes normalized_name in
// the service.
type UpdateUserInfoRequest struct {
	Name    string  `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Phone   string  `db:"phone"   json:"phone"   validate:"omitempty,max=30"`
	Address *string `db:"address" json:"address" validate:"omitempty,max=255"`
}

type UpdateUserRoleRequest struct {
	Role string `db:"role" json:"role" validate:"required,oneof=guest manager receptionist"`
}

type UploadProfilePictureRequest struct {
	ProfilePicture     *multipart.FileHeader `json:"profilePicture" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ProfilePictureFile multipart.File        `json:"-"`
}

type GetUsersResponse struct {
	Users       []UserResponse `json:"users"`
	TotalUsers  int            `json:"totalUsers"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

func (r *GetUsersResponse) FromModels(models []model.User, total, page, limit int) {
	r.TotalUsers = total
	r.TotalPages = shared.CalculateTotalPage(total, limit)
	r.CurrentPage = page

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
