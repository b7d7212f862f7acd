// Package mail отправляет приветственные письма новым продавцам.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/linemk/tuuze-market/internal/config"
	"github.com/linemk/tuuze-market/internal/storage"
	gomail "gopkg.in/gomail.v2"
)

// шаблон письма; при необходимости выносится в отдельный файл
const welcomeTemplate = `
<html>
  <body>
    <h2>Welcome to TUUZE, {{.Username}}!</h2>
    <p>Your merchant account is ready. Add your first products and register a
    wallet address to start receiving crypto payments.</p>
  </body>
</html>`

// Dialer отправляет готовое письмо; в продакшене это gomail.Dialer
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	log          *slog.Logger
	merchantRepo storage.MerchantStorage
	dialer       Dialer
	from         string
	subject      string
	tmpl         *template.Template
}

func NewMailer(log *slog.Logger, merchantRepo storage.MerchantStorage, dialer Dialer, from string) *Mailer {
	return &Mailer{
		log:          log,
		merchantRepo: merchantRepo,
		dialer:       dialer,
		from:         from,
		subject:      "Welcome to TUUZE",
		tmpl:         template.Must(template.New("welcome").Parse(welcomeTemplate)),
	}
}

// NewSMTPDialer создаёт gomail-диалер из конфигурации.
func NewSMTPDialer(cfg config.MailerConfig) *gomail.Dialer {
	return gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
}

// SendWelcomeEmails выбирает продавцов без приветственного письма, отправляет
// каждому письмо и помечает строку. Ошибка по одному получателю логируется и
// не прерывает остальных; строка помечается только после успешной отправки
func (m *Mailer) SendWelcomeEmails(ctx context.Context) (int, error) {
	const op = "mail.SendWelcomeEmails"
	logger := m.log.With(slog.String("op", op))

	merchants, err := m.merchantRepo.GetUnwelcomed(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get merchants: %w", op, err)
	}
	if len(merchants) == 0 {
		return 0, nil
	}

	sent := 0
	for _, merchant := range merchants {
		var body bytes.Buffer
		if err := m.tmpl.Execute(&body, struct{ Username string }{Username: merchant.Username}); err != nil {
			logger.Error("failed to render template",
				slog.String("merchantID", merchant.ID), slog.Any("error", err))
			continue
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", merchant.Email)
		msg.SetHeader("Subject", m.subject)
		msg.SetBody("text/html", body.String())

		if err := m.dialer.DialAndSend(msg); err != nil {
			logger.Error("failed to send welcome email",
				slog.String("merchantID", merchant.ID), slog.Any("error", err))
			continue
		}

		if err := m.merchantRepo.MarkWelcomed(ctx, merchant.ID); err != nil {
			logger.Error("failed to mark merchant welcomed",
				slog.String("merchantID", merchant.ID), slog.Any("error", err))
			continue
		}

		logger.Info("welcome email sent", slog.String("merchantID", merchant.ID))
		sent++
	}
	return sent, nil
}
