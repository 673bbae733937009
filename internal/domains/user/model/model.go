package model

import "hotelier/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldName           = "name"
	FieldNormalizedName = "normalized_name"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPhone          = "phone"
	FieldAddress        = "address"
	FieldProfilePicture = "profile_picture"
	FieldRole           = "role"
)

const (
	RoleGuest        = "guest"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
)

type User struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	NormalizedName string  `db:"normalized_name"`
	Email          string  `db:"email"`
	Password       string  `db:"password"`
	Phone          string  `db:"phone"`
	Address        *string `db:"address"`
	ProfilePicture *string `db:"profile_picture"`
	Role           string  `db:"role"`
	model.Metadata
}
