package service_test

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	s3Mocks "hotelier/infras/s3/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	notifierMocks "hotelier/internal/domains/booking/notification/mocks"
	"hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/booking/service"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	userMocks "hotelier/internal/domains/user/mocks"
	userModel "hotelier/internal/domains/user/model"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

type fixture struct {
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	userRepo *userMocks.MockUser
	notifier *notifierMocks.MockNotifier
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	svc      service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		userRepo: userMocks.NewMockUser(ctrl),
		notifier: notifierMocks.NewMockNotifier(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	// Cache lookups miss by default; async saves and invalidations are noise
	// for these tests.
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.roomRepo, f.userRepo, f.notifier, &config.Config{}, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func guestContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "guest-1")
}

func testRoom() roomModel.Room {
	return roomModel.Room{
		ID:         "room-1",
		RoomNumber: "101",
		RoomType:   roomModel.TypeDeluxe,
		Price:      100,
		Status:     roomModel.StatusAvailable,
	}
}

func testGuest() userModel.User {
	return userModel.User{
		ID:    "guest-1",
		Name:  "John Doe",
		Email: "john@example.com",
	}
}

func proofHeader() *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "proof.png",
		Size:     1024,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}
}

func createRequest() dto.CreateBookingRequest {
	checkIn := timezone.Now().Add(24 * time.Hour)

	return dto.CreateBookingRequest{
		CheckIn:       checkIn.Format("2006-01-02"),
		CheckOut:      checkIn.Add(48 * time.Hour).Format("2006-01-02"),
		PaymentMethod: model.PaymentMethodBankTransfer,
		PaymentProof:  proofHeader(),
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("successful booking", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.repo.EXPECT().
			Overlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), model.StatusCancelled, model.StatusFailed).
			Return(nil, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/payment_proofs/proof.png", nil)
		f.repo.EXPECT().
			CreateBooked(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
				assert.Equal(t, 2, booking.Duration())
				assert.InDelta(t, 200, booking.TotalPrice, 0.001)
				assert.Equal(t, model.DefaultSpecialRequests, booking.SpecialRequests)

				return nil
			})
		f.notifier.EXPECT().BookingStatusChanged(gomock.Any(), gomock.Any()).AnyTimes()
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		res, err := f.svc.Create(guestContext(), "room-1", createRequest())

		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, 2, res.Duration)
		assert.Equal(t, "101", res.Room.RoomNumber)
		assert.Equal(t, "John Doe", res.User.Name)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(guestContext(), "missing", createRequest())

		assert.ErrorContains(t, err, "Room not found")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("missing payment method", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		req := createRequest()
		req.PaymentMethod = ""

		_, err := f.svc.Create(guestContext(), "room-1", req)

		assert.ErrorContains(t, err, "Payment method is required.")
	})

	t.Run("missing payment proof", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		req := createRequest()
		req.PaymentProof = nil

		_, err := f.svc.Create(guestContext(), "room-1", req)

		assert.ErrorContains(t, err, "Payment proof is required.")
	})

	t.Run("overlapping live booking rejected", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.repo.EXPECT().
			Overlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), model.StatusCancelled, model.StatusFailed).
			Return([]model.Booking{{ID: "existing"}}, nil)

		_, err := f.svc.Create(guestContext(), "room-1", createRequest())

		assert.ErrorContains(t, err, "Room not available for the specified dates")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("transactional conflict cleans up the uploaded proof", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.repo.EXPECT().
			Overlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), model.StatusCancelled, model.StatusFailed).
			Return(nil, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/payment_proofs/proof.png", nil)
		f.repo.EXPECT().CreateBooked(gomock.Any(), gomock.Any()).Return(repository.ErrRoomUnavailable)
		f.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(guestContext(), "room-1", createRequest())

		assert.ErrorContains(t, err, "Room not available for the specified dates")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("proof upload failure surfaces as bad request", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.repo.EXPECT().
			Overlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), model.StatusCancelled, model.StatusFailed).
			Return(nil, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", assert.AnError)

		_, err := f.svc.Create(guestContext(), "room-1", createRequest())

		assert.ErrorContains(t, err, "failed to upload payment proof")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("client-stated total price is kept", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.repo.EXPECT().
			Overlapping(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), model.StatusCancelled, model.StatusFailed).
			Return(nil, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/payment_proofs/proof.png", nil)
		f.repo.EXPECT().
			CreateBooked(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.InDelta(t, 350, booking.TotalPrice, 0.001)

				return nil
			})
		f.notifier.EXPECT().BookingStatusChanged(gomock.Any(), gomock.Any()).AnyTimes()
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		req := createRequest()
		req.TotalPrice = 350

		res, err := f.svc.Create(guestContext(), "room-1", req)

		require.NoError(t, err)
		assert.InDelta(t, 350, res.TotalPrice, 0.001)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("check-out before check-in rejected", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)

		req := createRequest()
		req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn

		_, err := f.svc.Create(guestContext(), "room-1", req)

		assert.ErrorContains(t, err, "check-out date must be after check-in date")
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		booking := model.Booking{ID: "booking-1", RoomID: "room-1", UserID: "guest-1", Status: model.StatusConfirmed}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		res, err := f.svc.Get(context.Background(), "booking-1")

		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, model.StatusConfirmed, res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.ErrorContains(t, err, "Booking Not Found")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("empty patch rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{}, "booking-1")

		assert.ErrorContains(t, err, "update request cannot be empty")
	})

	t.Run("status change notifies the guest", func(t *testing.T) {
		f := newFixture(t)

		stored := model.Booking{ID: "booking-1", RoomID: "room-1", UserID: "guest-1", Status: model.StatusPending}
		updated := stored
		updated.Status = model.StatusConfirmed

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusConfirmed, fields["status"])
					assert.NotContains(t, fields, "special_requests")

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)

		notified := make(chan model.Booking, 1)
		f.notifier.EXPECT().
			BookingStatusChanged(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, booking model.Booking) {
				notified <- booking
			})

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		res, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "booking-1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)

		select {
		case booking := <-notified:
			assert.Equal(t, model.StatusConfirmed, booking.Status)
		case <-time.After(time.Second):
			t.Fatal("expected a booking notification")
		}
	})

	t.Run("same status does not notify", func(t *testing.T) {
		f := newFixture(t)

		stored := model.Booking{ID: "booking-1", RoomID: "room-1", UserID: "guest-1", Status: model.StatusPending}

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
		)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{Status: model.StatusPending}, "booking-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("payment fields patch through", func(t *testing.T) {
		f := newFixture(t)

		stored := model.Booking{ID: "booking-1", RoomID: "room-1", UserID: "guest-1", Status: model.StatusPending}
		total := 250.0

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.PaymentMethodBankTransfer, fields["payment_method"])
					assert.Equal(t, "https://cdn.example.com/payment_proofs/new.png", fields["payment_proof"])
					assert.Equal(t, total, fields["total_price"])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
		)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{
			PaymentMethod: model.PaymentMethodBankTransfer,
			PaymentProof:  "https://cdn.example.com/payment_proofs/new.png",
			TotalPrice:    &total,
		}, "booking-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("date move onto a live overlap is a conflict", func(t *testing.T) {
		f := newFixture(t)

		stored := model.Booking{ID: "booking-1", RoomID: "room-1", UserID: "guest-1", Status: model.StatusPending}

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)}),
		)

		checkIn := timezone.Now().Add(24 * time.Hour)
		req := dto.UpdateBookingRequest{
			CheckIn:  checkIn.Format("2006-01-02"),
			CheckOut: checkIn.Add(48 * time.Hour).Format("2006-01-02"),
		}

		_, err := f.svc.Update(guestContext(), req, "booking-1")

		assert.ErrorContains(t, err, "Room not available for the specified dates")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Update(guestContext(), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "missing")

		assert.ErrorContains(t, err, "Booking Not Found")
	})
}

func TestBookingService_List(t *testing.T) {
	bookings := func() []model.Booking {
		base := timezone.Now()

		return []model.Booking{
			{ID: "short", RoomID: "room-1", UserID: "guest-1", CheckIn: base, CheckOut: base.Add(24 * time.Hour)},
			{ID: "long", RoomID: "room-1", UserID: "guest-1", CheckIn: base, CheckOut: base.Add(5 * 24 * time.Hour)},
			{ID: "mid", RoomID: "room-1", UserID: "guest-1", CheckIn: base, CheckOut: base.Add(3 * 24 * time.Hour)},
		}
	}

	t.Run("longest duration first", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings(), nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, OrderBy: gDto.OrderByLongest}, dto.ListBookingsFilter{})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 3)
		assert.Equal(t, "long", res.Bookings[0].ID)
		assert.Equal(t, "mid", res.Bookings[1].ID)
		assert.Equal(t, "short", res.Bookings[2].ID)
		assert.Equal(t, 3, res.TotalBookings)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("shortest duration first", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings(), nil)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortOrder: gDto.OrderByShortest}, dto.ListBookingsFilter{})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 3)
		assert.Equal(t, "short", res.Bookings[0].ID)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings(), nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 5, Limit: 10}, dto.ListBookingsFilter{})

		assert.ErrorIs(t, err, failure.PageNotFound)
	})

	t.Run("no matching bookings is not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListBookingsFilter{})

		assert.ErrorIs(t, err, failure.PageNotFound)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("roomNumber filter resolves to room id", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil).Times(2)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				require.Len(t, filter.Filters, 1)

				got, ok := filter.Filters[0].(gDto.Filter)
				require.True(t, ok)
				assert.Equal(t, model.FieldRoomID, got.Field)
				assert.Equal(t, "room-1", got.Value)

				return []model.Booking{{ID: "booking-1", RoomID: "room-1", UserID: "guest-1"}}, nil
			})

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListBookingsFilter{RoomNumber: "101"})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("alphanumeric room number resolves", func(t *testing.T) {
		f := newFixture(t)

		annex := roomModel.Room{ID: "room-2", RoomNumber: "101A", RoomType: roomModel.TypeStandard, Price: 80}

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
				require.Len(t, filter.Filters, 1)

				got, ok := filter.Filters[0].(gDto.Filter)
				require.True(t, ok)
				assert.Equal(t, roomModel.FieldRoomNumber, got.Field)
				assert.Equal(t, "101A", got.Value)

				return annex, nil
			})
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(annex, nil)
		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "booking-1", RoomID: "room-2", UserID: "guest-1"}}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListBookingsFilter{RoomNumber: "101A"})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "101A", res.Bookings[0].Room.RoomNumber)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown room number fails the listing", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListBookingsFilter{RoomNumber: "999"})

		assert.ErrorContains(t, err, "Room not found")
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("userName filter resolves via normalized name", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil).Times(2)
		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				require.Len(t, filter.Filters, 1)

				got, ok := filter.Filters[0].(gDto.Filter)
				require.True(t, ok)
				assert.Equal(t, model.FieldUserID, got.Field)
				assert.Equal(t, "guest-1", got.Value)

				return []model.Booking{{ID: "booking-1", RoomID: "room-1", UserID: "guest-1"}}, nil
			})

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListBookingsFilter{UserName: "John Doe"})

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestBookingService_GetMy(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			require.Len(t, filter.Filters, 2)

			userFilter, ok := filter.Filters[0].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldUserID, userFilter.Field)
			assert.Equal(t, "guest-1", userFilter.Value)

			statusFilter, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.FieldStatus, statusFilter.Field)
			assert.Equal(t, model.StatusPending, statusFilter.Value)

			return []model.Booking{{ID: "booking-1", RoomID: "room-1", UserID: "guest-1", Status: model.StatusPending}}, nil
		})

	f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testGuest(), nil)

	res, err := f.svc.GetMy(guestContext(), gDto.QueryParams{Page: 1, Limit: 10}, model.StatusPending)

	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)

	time.Sleep(10 * time.Millisecond)
}

func TestBookingService_GetMyEmpty(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.svc.GetMy(guestContext(), gDto.QueryParams{Page: 1, Limit: 10}, constant.Empty)

	assert.ErrorIs(t, err, failure.PageNotFound)
}

func TestBookingService_ListBookedDates(t *testing.T) {
	t.Run("room missing", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.ListBookedDates(context.Background(), "missing")

		assert.ErrorContains(t, err, "Room not found")
	})

	t.Run("windows mapped in check-in order", func(t *testing.T) {
		f := newFixture(t)

		base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{
			{CheckIn: base, CheckOut: base.Add(48 * time.Hour), Status: model.StatusConfirmed},
			{CheckIn: base.Add(96 * time.Hour), CheckOut: base.Add(120 * time.Hour), Status: model.StatusCancelled},
		}, nil)

		dates, err := f.svc.ListBookedDates(context.Background(), "room-1")

		require.NoError(t, err)
		require.Len(t, dates, 2)
		assert.Equal(t, model.StatusConfirmed, dates[0].Status)
		assert.Equal(t, model.StatusCancelled, dates[1].Status)
	})
}
