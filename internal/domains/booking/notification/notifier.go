package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelier/infras/mailer"
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	userModel "hotelier/internal/domains/user/model"
	userRepo "hotelier/internal/domains/user/repository"
	"hotelier/shared"
	"hotelier/shared/constant"

	"github.com/rs/zerolog/log"
)

// Notifier emails the booking's guest about lifecycle changes. Sending is
// strictly best effort: failures are logged and absorbed, callers never see
// them and nothing is retried.
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking model.Booking)
}

type notifierImpl struct {
	mailer   mailer.Mailer
	userRepo userRepo.User
	roomRepo roomRepo.Room
	otel     otel.Otel
}

func New(mailer mailer.Mailer, userRepo userRepo.User, roomRepo roomRepo.Room, otel otel.Otel) Notifier {
	return &notifierImpl{
		mailer:   mailer,
		userRepo: userRepo,
		roomRepo: roomRepo,
		otel:     otel,
	}
}

func (n *notifierImpl) BookingStatusChanged(ctx context.Context, booking model.Booking) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelNotificationScopeName, constant.OtelNotificationScopeName+".BookingStatusChanged")
	defer scope.End()

	user, err := n.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil || user.ID == constant.Empty {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("skipping booking notification, user not resolvable")

		return
	}

	room, err := n.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil || room.ID == constant.Empty {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("skipping booking notification, room not resolvable")

		return
	}

	subject := fmt.Sprintf("Booking %s", booking.Status)

	plain := fmt.Sprintf(
		"Hello %s,\n\nYour booking for room %s (%s) is now %s.\n\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: %.2f\nPayment status: %s\n",
		user.Name,
		room.RoomNumber,
		room.RoomType,
		booking.Status,
		booking.CheckIn.Format("2006-01-02"),
		booking.CheckOut.Format("2006-01-02"),
		booking.Duration(),
		booking.TotalPrice,
		booking.PaymentStatus,
	)

	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your booking for room <b>%s</b> (%s) is now <b>%s</b>.</p><ul><li>Check-in: %s</li><li>Check-out: %s</li><li>Nights: %d</li><li>Total: %.2f</li><li>Payment status: %s</li></ul>",
		user.Name,
		room.RoomNumber,
		room.RoomType,
		booking.Status,
		booking.CheckIn.Format("2006-01-02"),
		booking.CheckOut.Format("2006-01-02"),
		booking.Duration(),
		booking.TotalPrice,
		booking.PaymentStatus,
	)

	if err := n.mailer.Send(ctx, user.Email, subject, plain, html); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking notification")
	}
}
