package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
	"hotelier/shared/timezone"

	"github.com/lib/pq"
)

var (
	// ErrRoomUnavailable is returned when the requested stay overlaps a live
	// booking, whether caught by the in-transaction recheck or by the
	// exclusion constraint.
	ErrRoomUnavailable = errors.New("room not available for the specified dates")

	// ErrRoomMissing is returned when the room row vanished between the
	// service-level lookup and the booking transaction.
	ErrRoomMissing = errors.New("room does not exist")
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Overlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeStatuses ...string) ([]model.Booking, error)
	CreateBooked(ctx context.Context, booking model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Overlapping returns the bookings of a room whose stay window intersects
// [checkIn, checkOut]. Two windows overlap when one starts no later than the
// other ends: check_in <= :out AND check_out >= :in. Statuses listed in
// excludeStatuses are left out.
func (repo *repositoryImpl) Overlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeStatuses ...string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Overlapping")
	defer scope.End()

	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldCheckIn,
			ArgName:  "overlap_until",
			Operator: gDto.FilterOperatorLessEq,
			Value:    checkOut,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldCheckOut,
			ArgName:  "overlap_from",
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    checkIn,
			Table:    model.TableName,
		},
	}

	if len(excludeStatuses) > 0 {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			ArgName:  "excluded_status",
			Operator: gDto.FilterOperatorNotIn,
			Value:    excludeStatuses,
			Table:    model.TableName,
		})
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: filters}) //nolint:wrapcheck
}

// CreateBooked runs the availability check and the insert as one transaction.
// The room row is locked first so two concurrent requests for the same room
// serialize; the overlap recheck then sees any booking committed in between.
// The exclusion constraint on bookings backstops anything that still slips
// through, surfacing as ErrRoomUnavailable either way. The booking id is also
// appended to the room's booking list before commit.
func (repo *repositoryImpl) CreateBooked(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateBooked")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lockedRoomID string

	err = tx.GetContext(ctx, &lockedRoomID,
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", roomModel.FieldID, roomModel.TableName, roomModel.FieldID),
		booking.RoomID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomMissing
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock room row: %w", err)
	}

	var overlapping int

	err = tx.GetContext(ctx, &overlapping,
		fmt.Sprintf(
			"SELECT COUNT(%s) FROM %s WHERE %s = $1 AND %s <= $2 AND %s >= $3 AND %s NOT IN ($4, $5)",
			model.FieldID, model.TableName, model.FieldRoomID, model.FieldCheckIn, model.FieldCheckOut, model.FieldStatus,
		),
		booking.RoomID, booking.CheckOut, booking.CheckIn, model.StatusCancelled, model.StatusFailed,
	)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to recheck availability: %w", err)
	}

	if overlapping > 0 {
		return ErrRoomUnavailable
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return ErrRoomUnavailable
		}

		return err
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(
			"UPDATE %s SET %s = array_append(%s, $1), %s = $2, %s = $3 WHERE %s = $4",
			roomModel.TableName, roomModel.FieldBookings, roomModel.FieldBookings,
			constant.FieldModifiedAt, constant.FieldModifiedBy, roomModel.FieldID,
		),
		booking.ID, timezone.Now(), booking.UserID, booking.RoomID,
	)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to append booking to room: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return nil
}
