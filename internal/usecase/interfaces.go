package usecase

import (
	"context"

	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/queue"
)

// MailSender sends one outbound HTML message.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// SenderFactory builds a fresh transport from the current SMTP settings.
// A new transport per operation, never cached: settings can change
// between calls through the admin API.
type SenderFactory func(smtp entity.SMTPSettings) MailSender

// EventPublisherInterface is optional; a nil publisher disables events.
type EventPublisherInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
	PublishCampaignDispatched(ctx context.Context, payload queue.CampaignDispatchedPayload) error
}
