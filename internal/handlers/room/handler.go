package room

import (
	"mime/multipart"
	"net/http"

	"hotelier/infras/otel"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/all", handler.GetRooms)
		routerGroup.Get("/one/{id}", handler.GetRoomByID)
		routerGroup.Post("/new", handler.CreateRoom)
		routerGroup.Patch("/update/{id}", handler.UpdateRoom)
		routerGroup.Delete("/delete/{id}", handler.DeleteRoom)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details. Expects a multipart form, images under the `images` field.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param roomNumber formData string true "Room number"
// @Param roomType formData string true "Room type (Suite, Superior, Deluxe, Standard)"
// @Param price formData number true "Price per night"
// @Param status formData string false "Room status (Available, Maintenance, Unavailable)"
// @Param description formData string false "Description"
// @Param floor formData int false "Floor"
// @Param capacity formData int true "Capacity"
// @Param amenities formData []string false "Amenities"
// @Param images formData file false "Room images"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/rooms/new [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	price, err := shared.ConvertStringToFloat(r.FormValue("price"))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid price"))

		return
	}

	capacity, err := shared.ConvertStringToInt(r.FormValue("capacity"))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid capacity"))

		return
	}

	req := dto.CreateRoomRequest{
		RoomNumber:  r.FormValue("roomNumber"),
		RoomType:    r.FormValue("roomType"),
		Price:       price,
		Status:      r.FormValue("status"),
		Description: r.FormValue("description"),
		Capacity:    capacity,
		Amenities:   r.MultipartForm.Value["amenities"],
	}

	if floorValue := r.FormValue("floor"); floorValue != "" {
		floor, err := shared.ConvertStringToInt(floorValue)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("invalid floor"))

			return
		}

		req.Floor = floor
	}

	images, imageFiles, err := openFormImages(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read room images")

		response.WithError(w, failure.BadRequestFromString("invalid room image file"))

		return
	}

	defer closeFiles(imageFiles)

	req.Images = images
	req.ImageFiles = imageFiles

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate room request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// GetRooms retrieves all rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve all rooms with optional filtering, sorting and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param roomType query string false "Filter by room type"
// @Param status query string false "Filter by status"
// @Param minPrice query number false "Minimum price per night"
// @Param maxPrice query number false "Maximum price per night"
// @Param roomNumber query string false "Filter by room number"
// @Param capacity query int false "Filter by capacity"
// @Param floor query int false "Filter by floor"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/rooms/all [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	appendEq := func(field, value string) {
		if value == "" {
			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	appendEq(model.FieldRoomType, r.URL.Query().Get("roomType"))
	appendEq(model.FieldStatus, r.URL.Query().Get("status"))
	appendEq(model.FieldRoomNumber, r.URL.Query().Get("roomNumber"))

	for _, numeric := range []struct {
		param    string
		field    string
		argName  string
		operator string
	}{
		{"capacity", model.FieldCapacity, "", gDto.FilterOperatorEq},
		{"floor", model.FieldFloor, "", gDto.FilterOperatorEq},
		{"minPrice", model.FieldPrice, "min_price", gDto.FilterOperatorGreaterEq},
		{"maxPrice", model.FieldPrice, "max_price", gDto.FilterOperatorLessEq},
	} {
		value := r.URL.Query().Get(numeric.param)
		if value == "" {
			continue
		}

		parsed, err := shared.ConvertStringToFloat(value)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("invalid "+numeric.param+" filter"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    numeric.field,
			ArgName:  numeric.argName,
			Operator: numeric.operator,
			Value:    parsed,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/rooms/one/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Update the details of an existing room. Expects a multipart form; new images replace the stored set.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/rooms/update/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	req := dto.UpdateRoomRequest{
		RoomType:    r.FormValue("roomType"),
		Status:      r.FormValue("status"),
		Description: r.FormValue("description"),
	}

	if r.MultipartForm != nil {
		req.Amenities = r.MultipartForm.Value["amenities"]
	}

	if roomNumber := r.FormValue("roomNumber"); roomNumber != "" {
		req.RoomNumber = &roomNumber
	}

	for _, numeric := range []struct {
		param string
		dest  **int
	}{
		{"floor", &req.Floor},
		{"capacity", &req.Capacity},
	} {
		value := r.FormValue(numeric.param)
		if value == "" {
			continue
		}

		parsed, err := shared.ConvertStringToInt(value)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("invalid "+numeric.param))

			return
		}

		*numeric.dest = &parsed
	}

	if priceValue := r.FormValue("price"); priceValue != "" {
		price, err := shared.ConvertStringToFloat(priceValue)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("invalid price"))

			return
		}

		req.Price = &price
	}

	images, imageFiles, err := openFormImages(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read room images")

		response.WithError(w, failure.BadRequestFromString("invalid room image file"))

		return
	}

	defer closeFiles(imageFiles)

	req.Images = images
	req.ImageFiles = imageFiles

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate room request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Description Delete a room using its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/rooms/delete/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

func openFormImages(r *http.Request) ([]*multipart.FileHeader, []multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}

	headers := r.MultipartForm.File[constant.FormFieldRoomImages]

	files := make([]multipart.File, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			closeFiles(files)

			return nil, nil, err //nolint:wrapcheck
		}

		files = append(files, file)
	}

	return headers, files, nil
}

func closeFiles(files []multipart.File) {
	for _, file := range files {
		_ = file.Close()
	}
}
