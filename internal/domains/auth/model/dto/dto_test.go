package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/infras/jwt"
	"hotelier/internal/domains/auth/model/dto"
	userModel "hotelier/internal/domains/user/model"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	t.Run("defaults to the guest role", func(t *testing.T) {
		req := dto.RegisterRequest{
			Name:     "John Doe",
			Email:    "john@example.com",
			Password: "plaintext",
			Phone:    "+6281234567890",
		}

		user := req.ToUserModel("system", "hashed-password")

		assert.Equal(t, userModel.RoleGuest, user.Role)
		assert.Equal(t, "johndoe", user.NormalizedName)
		assert.Equal(t, "hashed-password", user.Password)
		assert.Equal(t, "system", user.CreatedBy)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("keeps an explicit role", func(t *testing.T) {
		req := dto.RegisterRequest{
			Name:     "Front Desk",
			Email:    "desk@example.com",
			Password: "plaintext",
			Phone:    "+6281234567890",
			Role:     userModel.RoleReceptionist,
		}

		user := req.ToUserModel("system", "hashed-password")

		assert.Equal(t, userModel.RoleReceptionist, user.Role)
		assert.Equal(t, "frontdesk", user.NormalizedName)
	})
}

func TestUpdatePasswordRequest(t *testing.T) {
	req := dto.UpdatePasswordRequest{
		Password: "hashed-new-password",
	}

	assert.Equal(t, "hashed-new-password", req.Password)
}
