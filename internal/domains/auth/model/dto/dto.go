package dto

import (
	"hotelier/infras/jwt"
	userModel "hotelier/internal/domains/user/model"
	"hotelier/shared"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string  `json:"name"              validate:"required,max=100"`
	Email    string  `json:"email"             validate:"required,email"`
	Password string  `json:"password"          validate:"required,min=8"`
	Phone    string  `json:"phone"             validate:"required,max=30"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Role     string  `json:"role,omitempty"    validate:"omitempty,oneof=guest manager receptionist"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	role := r.Role
	if role == "" {
		role = userModel.RoleGuest
	}

	return userModel.User{
		ID:             uuid.NewString(),
		Name:           r.Name,
		NormalizedName: shared.NormalizeName(r.Name),
		Email:          r.Email,
		Password:       hashedPassword,
		Phone:          r.Phone,
		Address:        r.Address,
		Role:           role,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

// ChangePasswordRequest carries both passwords; the handler rejects the
// request outright when either is missing.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
