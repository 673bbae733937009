package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

const (
	otelAttrRecipient = "recipient"
	otelAttrSubject   = "subject"
)

// Mailer sends transactional email through the configured SMTP relay.
type Mailer interface {
	Send(ctx context.Context, to, subject, plainBody, htmlBody string) error
}

type mailerImpl struct {
	dialer *gomail.Dialer
	sender string
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	smtp := config.External.SMTP
	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)

	return &mailerImpl{
		dialer: dialer,
		sender: smtp.Sender,
		otel:   otel,
	}
}

func (m *mailerImpl) Send(ctx context.Context, to, subject, plainBody, htmlBody string) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelNotificationScopeName, constant.OtelNotificationScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrRecipient: to,
		otelAttrSubject:   subject,
	})

	message := gomail.NewMessage()
	message.SetHeader("From", m.sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", plainBody)

	if htmlBody != "" {
		message.AddAlternative("text/html", htmlBody)
	}

	if err = m.dialer.DialAndSend(message); err != nil {
		log.Error().Err(err).Str("recipient", to).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
