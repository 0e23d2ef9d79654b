package worker

// email_worker.go
// Processes notification emails from QueueEmail (import completion reports).

import (
	"context"
	"encoding/json"

	"backoffice/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailWorker delivers queued notification emails via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.To).Msg("email_worker: notification sent")
}
