package user

import (
	"errors"
	"net/http"

	"hotelier/infras/otel"
	"hotelier/internal/domains/user/model/dto"
	"hotelier/internal/domains/user/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router attaches the user routes. The routes are registered on the /users
// group shared with the auth handler.
func (handler *Handler) Router(r chi.Router) {
	r.Get("/me", handler.Me)
	r.Get("/all-users", handler.GetUsers)
	r.Post("/upload-pfp", handler.UploadProfilePicture)
	r.Patch("/update-user-info", handler.UpdateUserInfo)
	r.Patch("/update-user-role/{id}", handler.UpdateUserRole)
	r.Delete("/delete-user/{id}", handler.DeleteUser)
}

// Me returns the current user's profile.
// @Summary Get current user
// @Description Retrieve the profile of the currently authenticated user.
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse] "User profile"
// @Failure 401 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")

		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	user, err := handler.service.Me(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User profile retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, user)
}

// GetUsers lists users with role filtering and fuzzy name search.
// @Summary Get all users
// @Description Retrieve all users with optional role filtering, fuzzy name search and pagination.
// @Tags User
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param filterByRole query string false "Filter by role (guest, manager, receptionist)"
// @Param name query string false "Fuzzy name search"
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of users"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/users/all-users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	role := r.URL.Query().Get("filterByRole")
	name := r.URL.Query().Get("name")

	users, err := handler.service.GetAll(ctx, queryParams, role, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Users retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}

// UploadProfilePicture stores a new profile picture for the current user.
// @Summary Upload profile picture
// @Description Upload a profile picture for the currently authenticated user. Expects a multipart form with the file under `profilePicture`.
// @Tags User
// @Accept multipart/form-data
// @Produce json
// @Param profilePicture formData file true "Profile picture (png or jpeg, max 2 MB)"
// @Success 200 {object} response.Data[string] "Public URL of the uploaded picture"
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/users/upload-pfp [post]
// @Security BearerAuth
func (handler *Handler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadProfilePicture")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")

		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	req := dto.UploadProfilePictureRequest{}

	file, header, err := r.FormFile(constant.FormFieldProfilePicture)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read profile picture")

		response.WithError(w, failure.BadRequestFromString("invalid profile picture file"))

		return
	}

	if err == nil {
		defer file.Close()

		req.ProfilePicture = header
		req.ProfilePictureFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate profile picture")

		response.WithError(w, err)

		return
	}

	url, err := handler.service.UploadProfilePicture(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload profile picture")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile picture uploaded successfully by user " + userID)

	response.WithJSON(w, http.StatusOK, url)
}

// UpdateUserInfo updates the current user's profile fields.
// @Summary Update user info
// @Description Update the name, phone or address of the currently authenticated user.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserInfoRequest true "Update User Info Request"
// @Success 200 {object} response.Data[dto.UserResponse] "Updated user profile"
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/users/update-user-info [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUserInfo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUserInfo")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")

		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateUserInfoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.UpdateInfo(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user info")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User info updated successfully by user " + userID)

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUserRole changes another user's role.
// @Summary Update a user's role
// @Description Change the role of the user with the given ID.
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "Update User Role Request"
// @Success 200 {object} response.Message "User role updated successfully"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/users/update-user-role/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUserRole")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateUserRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateRole(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User role updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "User role updated successfully")
}

// DeleteUser deletes a user by ID.
// @Summary Delete a user by ID
// @Description Delete a user using their unique identifier.
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User deleted successfully"
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/users/delete-user/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
