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
	roomMocks "hotelier/internal/domains/room/mocks"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func managerContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "manager-1")
}

func imageHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     2048,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
	}
}

func createRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		RoomNumber: "101",
		RoomType:   model.TypeDeluxe,
		Price:      150,
		Capacity:   2,
		Amenities:  []string{"wifi", "minibar"},
	}
}

func storedRoom() model.Room {
	return model.Room{
		ID:         "room-1",
		RoomNumber: "101",
		RoomType:   model.TypeDeluxe,
		Price:      150,
		Status:     model.StatusAvailable,
		Capacity:   2,
		Images:     pq.StringArray{"https://cdn.example.com/room_images/old.jpg"},
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("successful creation defaults to available", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, "101", room.RoomNumber)
				assert.Equal(t, model.StatusAvailable, room.Status)
				assert.Equal(t, "manager-1", room.CreatedBy)
				assert.NotEmpty(t, room.ID)

				return nil
			})

		err := f.svc.Create(managerContext(), createRequest())

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("duplicate room number", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Create(managerContext(), createRequest())

		assert.ErrorContains(t, err, "Room with this room number already exists")
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unique violation on insert maps to duplicate", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})

		err := f.svc.Create(managerContext(), createRequest())

		assert.ErrorContains(t, err, "Room with this room number already exists")
	})

	t.Run("image upload failure rolls back earlier uploads", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.Images = []*multipart.FileHeader{imageHeader("a.jpg"), imageHeader("b.jpg")}
		req.ImageFiles = make([]multipart.File, 2)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		gomock.InOrder(
			f.s3.EXPECT().
				UploadFile(gomock.Any(), gomock.Any(), constant.StorageDirRoomImages, gomock.Any(), gomock.Any(), gomock.Any()).
				Return("https://cdn.example.com/room_images/a.jpg", nil),
			f.s3.EXPECT().
				UploadFile(gomock.Any(), gomock.Any(), constant.StorageDirRoomImages, gomock.Any(), gomock.Any(), gomock.Any()).
				Return("", assert.AnError),
			f.s3.EXPECT().
				DeleteFile(gomock.Any(), gomock.Any(), constant.StorageDirRoomImages, gomock.Any()).
				Return(nil),
		)

		err := f.svc.Create(managerContext(), req)

		assert.ErrorContains(t, err, "failed to upload room image")
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)

		res, err := f.svc.Get(context.Background(), "room-1")

		require.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
		assert.Equal(t, "101", res.RoomNumber)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.ErrorContains(t, err, "Room not found")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	t.Run("paged listing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{storedRoom()}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
		require.Len(t, res.Rooms, 1)
		assert.Equal(t, 1, res.TotalRooms)
		assert.Equal(t, 1, res.TotalPages)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("page beyond the end", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 10}, gDto.FilterGroup{})

		assert.ErrorIs(t, err, failure.PageNotFound)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("no matching rooms is not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.ErrorIs(t, err, failure.PageNotFound)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Update(managerContext(), dto.UpdateRoomRequest{}, "missing")

		assert.ErrorContains(t, err, "Room not found")
	})

	t.Run("changed room number rechecked for uniqueness", func(t *testing.T) {
		f := newFixture(t)

		newNumber := "202A"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Update(managerContext(), dto.UpdateRoomRequest{RoomNumber: &newNumber}, "room-1")

		assert.ErrorContains(t, err, "Room with this room number already exists")
	})

	t.Run("unchanged room number skips the recheck", func(t *testing.T) {
		f := newFixture(t)

		sameNumber := "101"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "101", fields["room_number"])
				assert.Equal(t, "manager-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.Update(managerContext(), dto.UpdateRoomRequest{RoomNumber: &sameNumber}, "room-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("new images replace the stored set", func(t *testing.T) {
		f := newFixture(t)

		req := dto.UpdateRoomRequest{
			Images:     []*multipart.FileHeader{imageHeader("new.jpg")},
			ImageFiles: make([]multipart.File, 1),
		}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), constant.StorageDirRoomImages, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/room_images/new.jpg", nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				images, ok := fields[model.FieldImages].(pq.StringArray)
				require.True(t, ok)
				assert.Equal(t, pq.StringArray{"https://cdn.example.com/room_images/new.jpg"}, images)

				return nil
			})
		f.s3.EXPECT().
			GetObjectNameFromURL(gomock.Any(), "https://cdn.example.com/room_images/old.jpg").
			Return("room_images/old.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), constant.Empty, "room_images/old.jpg").Return(nil)

		err := f.svc.Update(managerContext(), req, "room-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(context.Background(), "room-1")

		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.ErrorContains(t, err, "Room not found")
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
