package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/s3"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/notification"
	"hotelier/internal/domains/booking/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	userModel "hotelier/internal/domains/user/model"
	userRepo "hotelier/internal/domains/user/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"

	msgRoomUnavailable = "Room not available for the specified dates"
	msgBookingNotFound = "Booking Not Found"
	msgRoomNotFound    = "Room not found"
	msgUserNotFound    = "User not found"
)

type Booking interface {
	Create(ctx context.Context, roomID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListBookingsFilter) (dto.GetBookingsResponse, error)
	GetMy(ctx context.Context, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	ListBookedDates(ctx context.Context, roomID string) ([]dto.BookedDate, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	userRepo userRepo.User
	notifier notification.Notifier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	notifier notification.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, roomID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	if req.PaymentMethod == constant.Empty {
		return res, failure.BadRequestFromString("Payment method is required.") //nolint:wrapcheck
	}

	if req.PaymentProof == nil {
		return res, failure.BadRequestFromString("Payment proof is required.") //nolint:wrapcheck
	}

	booking, err := req.ToModel(user, roomID, constant.Empty, room.Price)
	if err != nil {
		return res, err
	}

	// Cancelled and Failed holds do not block a rebooking.
	overlapping, err := s.repo.Overlapping(ctx, roomID, booking.CheckIn, booking.CheckOut, model.DeadStatuses()...)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	if len(overlapping) > 0 {
		return res, failure.BadRequestFromString(msgRoomUnavailable) //nolint:wrapcheck
	}

	proofURL, proofObjectName, err := s.uploadPaymentProof(ctx, req)
	if err != nil {
		return res, err
	}

	booking.PaymentProof = proofURL

	if err = s.repo.CreateBooked(ctx, booking); err != nil {
		s.deletePaymentProof(ctx, proofObjectName)

		if errors.Is(err, repository.ErrRoomUnavailable) {
			return res, failure.BadRequestFromString(msgRoomUnavailable) //nolint:wrapcheck
		}

		if errors.Is(err, repository.ErrRoomMissing) {
			return res, failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go s.notifier.BookingStatusChanged(context.WithoutCancel(ctx), booking)

	s.invalidate(ctx, booking.ID, booking.RoomID)

	guest, err := s.userRepo.Get(ctx, shared.FilterByID(user, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve booking guest for response")
	}

	res.FromModel(booking, room, guest)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	responses, err := s.buildResponses(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	res = responses[0]

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update merges the patch into the stored booking. Only fields present in the
// request change; the stay window is not re-validated against other bookings,
// though the exclusion constraint still rejects a move onto a live overlap.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) //nolint:wrapcheck
	}

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, user)

	if checkIn != nil {
		updatedFields[model.FieldCheckIn] = *checkIn
	}

	if checkOut != nil {
		updatedFields[model.FieldCheckOut] = *checkOut
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return res, failure.BadRequestFromString(msgRoomUnavailable) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload booking")

		return res, fmt.Errorf("failed to reload booking: %w", err)
	}

	if req.Status != constant.Empty && req.Status != booking.Status {
		go s.notifier.BookingStatusChanged(context.WithoutCancel(ctx), updated)
	}

	s.invalidate(ctx, id, booking.RoomID)

	responses, err := s.buildResponses(ctx, []model.Booking{updated})
	if err != nil {
		return res, err
	}

	return responses[0], nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListBookingsFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filterGroup, err := s.resolveFilter(ctx, filter)
	if err != nil {
		return res, err
	}

	return s.list(ctx, params, filterGroup)
}

func (s *serviceImpl) GetMy(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMy")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filters := []any{
		gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    user,
			Table:    model.TableName,
		},
	}

	if status != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	return s.list(ctx, params, gDto.FilterGroup{Filters: filters})
}

// ListBookedDates returns every stay window ever recorded for the room,
// regardless of status.
func (s *serviceImpl) ListBookedDates(ctx context.Context, roomID string) (res []dto.BookedDate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return nil, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exists {
		return nil, failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: model.FieldCheckIn, SortOrder: "asc"}

	bookings, err := s.repo.GetAll(ctx, params, shared.FilterByField(roomID, model.FieldRoomID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked dates")

		return nil, fmt.Errorf("failed to get booked dates: %w", err)
	}

	res = make([]dto.BookedDate, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res, nil
}

// list runs the shared listing pipeline: fetch the full filtered set sorted in
// SQL, re-sort in memory when a duration ordering is requested (the derived
// key cannot be sorted in SQL), then slice the page window. Page counts are
// computed before slicing so a page beyond the end 404s.
func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	sortOnly := gDto.QueryParams{SortBy: params.SortBy, SortOrder: params.SortOrder}
	if _, ok := params.DurationOrder(); ok {
		sortOnly.SortOrder = constant.Empty
	}

	bookings, err := s.repo.GetAll(ctx, sortOnly, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	if order, ok := params.DurationOrder(); ok {
		sort.SliceStable(bookings, func(i, j int) bool {
			if order == gDto.OrderByLongest {
				return bookings[i].Duration() > bookings[j].Duration()
			}

			return bookings[i].Duration() < bookings[j].Duration()
		})
	}

	total := len(bookings)

	// Zero matches means every page is beyond the end, page 1 included.
	if total == 0 || params.Page > shared.CalculateTotalPage(total, params.Limit) {
		return res, failure.PageNotFound
	}

	page := shared.PageWindow(bookings, params.Page, params.Limit)

	responses, err := s.buildResponses(ctx, page)
	if err != nil {
		return res, err
	}

	res.Bookings = responses
	res.Paginate(total, params.Page, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// resolveFilter turns the raw listing filters into a SQL filter group,
// resolving roomNumber and userName to ids first. A failed resolution fails
// the whole query with a 404.
func (s *serviceImpl) resolveFilter(ctx context.Context, filter dto.ListBookingsFilter) (gDto.FilterGroup, error) {
	filters := []any{}

	if filter.RoomNumber != constant.Empty {
		room, err := s.roomRepo.Get(ctx, shared.FilterByField(filter.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve room number")

			return gDto.FilterGroup{}, fmt.Errorf("failed to resolve room number: %w", err)
		}

		if room.ID == constant.Empty {
			return gDto.FilterGroup{}, failure.NotFound(msgRoomNotFound) //nolint:wrapcheck
		}

		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    room.ID,
			Table:    model.TableName,
		})
	}

	if filter.UserName != constant.Empty {
		user, err := s.userRepo.Get(ctx, shared.FilterByField(shared.NormalizeName(filter.UserName), userModel.FieldNormalizedName, userModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve user name")

			return gDto.FilterGroup{}, fmt.Errorf("failed to resolve user name: %w", err)
		}

		if user.ID == constant.Empty {
			return gDto.FilterGroup{}, failure.NotFound(msgUserNotFound) //nolint:wrapcheck
		}

		filters = append(filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    user.ID,
			Table:    model.TableName,
		})
	}

	if filter.BookingStatus != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    filter.BookingStatus,
			Table:    model.TableName,
		})
	}

	if filter.PaymentStatus != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			ArgName:  "payment_status_filter",
			Operator: gDto.FilterOperatorEq,
			Value:    filter.PaymentStatus,
			Table:    model.TableName,
		})
	}

	if filter.BookingID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorEq,
			Value:    filter.BookingID,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: filters}, nil
}

// buildResponses enriches bookings with their room and user summaries. Rooms
// and users repeat a lot across one page, so lookups are memoized.
func (s *serviceImpl) buildResponses(ctx context.Context, bookings []model.Booking) ([]dto.BookingResponse, error) {
	rooms := map[string]roomModel.Room{}
	users := map[string]userModel.User{}

	responses := make([]dto.BookingResponse, len(bookings))

	for i, booking := range bookings {
		room, ok := rooms[booking.RoomID]
		if !ok {
			var err error

			room, err = s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to resolve booking room")

				return nil, fmt.Errorf("failed to resolve booking room: %w", err)
			}

			rooms[booking.RoomID] = room
		}

		user, ok := users[booking.UserID]
		if !ok {
			var err error

			user, err = s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
			if err != nil {
				log.Error().Err(err).Msg("failed to resolve booking user")

				return nil, fmt.Errorf("failed to resolve booking user: %w", err)
			}

			users[booking.UserID] = user
		}

		responses[i].FromModel(booking, room, user)
	}

	return responses, nil
}

func (s *serviceImpl) uploadPaymentProof(ctx context.Context, req dto.CreateBookingRequest) (url, objectName string, err error) {
	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString()

	parts := strings.Split(req.PaymentProof.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err = s.s3.UploadFile(ctx, bucketName, constant.StorageDirPaymentProofs, req.PaymentProofFile, req.PaymentProof, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload payment proof to S3")

		return constant.Empty, constant.Empty, failure.BadRequestFromString("failed to upload payment proof") //nolint:wrapcheck
	}

	return url, filename, nil
}

func (s *serviceImpl) deletePaymentProof(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, constant.StorageDirPaymentProofs, objectName)
}

func (s *serviceImpl) invalidate(ctx context.Context, bookingID, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey("room:get", roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}
