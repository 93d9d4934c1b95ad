package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/mail"
	"github.com/propertypro/leads-backend/internal/infra/queue"
)

type SubmitLeadInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type SubmitLeadUseCase struct {
	Leads     entity.LeadStore
	Settings  entity.SettingsStore
	NewSender SenderFactory
	Events    EventPublisherInterface
	Log       *zap.Logger
}

func NewSubmitLeadUseCase(
	leads entity.LeadStore,
	settings entity.SettingsStore,
	newSender SenderFactory,
	events EventPublisherInterface,
	log *zap.Logger,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Leads:     leads,
		Settings:  settings,
		NewSender: newSender,
		Events:    events,
		Log:       log,
	}
}

// Execute validates the submission, persists the new lead, then sends the
// operator alert and the visitor acknowledgment through a transport built
// from current settings. The sends run after the write on purpose: a lead
// stays persisted even when notification fails, and the caller is told the
// operation failed anyway.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*entity.Lead, error) {
	if validationErrors := ValidateSubmission(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	lead := entity.Lead{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Status:    entity.StatusNew,
		Tags:      []string{},
		Source:    entity.SourceLandingPage,
		CreatedAt: time.Now().UTC(),
		Value:     nil,
	}

	if err := uc.Leads.Append(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "STORAGE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}

	settings := uc.Settings.Read()
	sender := uc.NewSender(settings.SMTP)

	alertBody, err := mail.RenderOperatorAlert(mail.OperatorAlertData{
		Name:   lead.Name,
		Email:  lead.Email,
		Phone:  lead.Phone,
		LeadID: lead.ID,
	})
	if err != nil {
		return nil, &TechnicalError{Code: "TEMPLATE_ERROR", Message: err.Error()}
	}

	if err := sender.Send(settings.Website.Email, mail.SubjectOperatorAlert, alertBody); err != nil {
		uc.Log.Error("operator alert failed, lead already persisted",
			zap.String("lead_id", lead.ID), zap.Error(err))
		return nil, &TechnicalError{
			Code:    "SEND_FAILED",
			Message: "failed to send operator notification: " + err.Error(),
		}
	}

	ackBody, err := mail.RenderAcknowledgment(mail.AcknowledgmentData{
		Name:        lead.Name,
		CompanyName: settings.Website.CompanyName,
		Phone:       settings.Website.Phone,
		Email:       settings.Website.Email,
	})
	if err != nil {
		return nil, &TechnicalError{Code: "TEMPLATE_ERROR", Message: err.Error()}
	}

	if err := sender.Send(lead.Email, mail.SubjectAcknowledgment, ackBody); err != nil {
		uc.Log.Error("acknowledgment failed, lead already persisted",
			zap.String("lead_id", lead.ID), zap.Error(err))
		return nil, &TechnicalError{
			Code:    "SEND_FAILED",
			Message: "failed to send acknowledgment: " + err.Error(),
		}
	}

	if uc.Events != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:    lead.ID,
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Source:    lead.Source,
			CreatedAt: lead.CreatedAt,
		}
		if err := uc.Events.PublishLeadCaptured(ctx, payload); err != nil {
			uc.Log.Warn("failed to publish lead.captured event", zap.Error(err))
		}
	}

	return &lead, nil
}
