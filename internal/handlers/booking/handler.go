package booking

import (
	"errors"
	"net/http"

	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
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
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/all", handler.GetBookings)
		routerGroup.Get("/my", handler.GetMyBookings)
		routerGroup.Get("/one/{id}", handler.GetBookingByID)
		routerGroup.Get("/booked-dates/{roomId}", handler.GetBookedDates)
		routerGroup.Post("/new/{roomId}", handler.CreateBooking)
		routerGroup.Patch("/update/{id}", handler.UpdateBooking)
	})
}

// CreateBooking handles the creation of a new booking for a room.
// @Summary Create a new booking
// @Description Book a room for the given dates. Expects a multipart form with the booking fields and the payment proof file.
// @Tags Booking
// @Accept multipart/form-data
// @Produce json
// @Param roomId path string true "Room ID"
// @Param checkIn formData string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut formData string true "Check-out date (YYYY-MM-DD)"
// @Param paymentMethod formData string true "Payment method (BankTransfer)"
// @Param totalPrice formData number false "Total price; derived from the room rate when omitted"
// @Param specialRequests formData string false "Special requests"
// @Param paymentProof formData file true "Payment proof"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/new/{roomId} [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	req := dto.CreateBookingRequest{
		CheckIn:         r.FormValue("checkIn"),
		CheckOut:        r.FormValue("checkOut"),
		PaymentMethod:   r.FormValue("paymentMethod"),
		SpecialRequests: r.FormValue("specialRequests"),
	}

	if totalValue := r.FormValue("totalPrice"); totalValue != "" {
		totalPrice, err := shared.ConvertStringToFloat(totalValue)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("invalid totalPrice"))

			return
		}

		req.TotalPrice = totalPrice
	}

	file, header, err := r.FormFile(constant.FormFieldPaymentProof)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read payment proof")

		response.WithError(w, failure.BadRequestFromString("invalid payment proof file"))

		return
	}

	if err == nil {
		defer file.Close()

		req.PaymentProof = header
		req.PaymentProofFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate booking request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering, sorting and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param roomNumber query string false "Filter by room number"
// @Param userName query string false "Filter by guest name"
// @Param bookingStatus query string false "Filter by booking status"
// @Param paymentStatus query string false "Filter by payment status"
// @Param bookingId query string false "Filter by booking ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/all [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.ListBookingsFilter{
		RoomNumber:    r.URL.Query().Get("roomNumber"),
		UserName:      r.URL.Query().Get("userName"),
		BookingStatus: r.URL.Query().Get("bookingStatus"),
		PaymentStatus: r.URL.Query().Get("paymentStatus"),
		BookingID:     r.URL.Query().Get("bookingId"),
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings retrieves all bookings for the currently authenticated user.
// @Summary Get my bookings
// @Description Retrieve all bookings of the current user with optional status filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by booking status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 400 {object} response.Message
// @Failure 401 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/my [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")

		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get("status")

	bookings, err := handler.service.GetMy(ctx, queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/one/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookedDates lists the occupied date windows of a room.
// @Summary Get booked dates for a room
// @Description Retrieve the date windows during which the room is already booked.
// @Tags Booking
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} response.Data[[]dto.BookedDate] "Booked date windows"
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/booked-dates/{roomId} [get]
func (handler *Handler) GetBookedDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedDates")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	dates, err := handler.service.ListBookedDates(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booked dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booked dates retrieved successfully")

	response.WithJSON(w, http.StatusOK, dates)
}

// UpdateBooking updates an existing booking by its ID.
// @Summary Update a booking by ID
// @Description Update the status, payment status, dates or special requests of an existing booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Updated booking"
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Failure 500 {object} response.Message
// @Router /v1/bookings/update/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}
