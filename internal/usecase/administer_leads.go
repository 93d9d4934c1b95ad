package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/mail"
)

// AdministerLeadsUseCase is the operator-facing CRUD facade over the two
// stores, plus the one-off SMTP diagnostic send.
type AdministerLeadsUseCase struct {
	Leads     entity.LeadStore
	Settings  entity.SettingsStore
	NewSender SenderFactory
	Log       *zap.Logger
}

func NewAdministerLeadsUseCase(
	leads entity.LeadStore,
	settings entity.SettingsStore,
	newSender SenderFactory,
	log *zap.Logger,
) *AdministerLeadsUseCase {
	return &AdministerLeadsUseCase{
		Leads:     leads,
		Settings:  settings,
		NewSender: newSender,
		Log:       log,
	}
}

// List returns the authoritative collection; filtering is a view concern.
func (uc *AdministerLeadsUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	return uc.Leads.All(ctx)
}

// Update shallow-merges the patch onto the stored lead.
// Returns entity.ErrLeadNotFound when the id is unknown.
func (uc *AdministerLeadsUseCase) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	return uc.Leads.Update(ctx, id, patch)
}

func (uc *AdministerLeadsUseCase) Delete(ctx context.Context, id string) error {
	return uc.Leads.Delete(ctx, id)
}

func (uc *AdministerLeadsUseCase) GetSettings(ctx context.Context) entity.Settings {
	return uc.Settings.Read()
}

// PutSettings replaces the settings wholesale. Durability is best-effort:
// a failed write is logged, never surfaced as a hard stop.
func (uc *AdministerLeadsUseCase) PutSettings(ctx context.Context, settings entity.Settings) {
	if err := uc.Settings.Write(settings); err != nil {
		uc.Log.Error("settings write lost", zap.Error(err))
	}
}

// TestSMTP sends one diagnostic message to the site contact address.
// The transport error comes back verbatim for the operator to read.
func (uc *AdministerLeadsUseCase) TestSMTP(ctx context.Context) error {
	settings := uc.Settings.Read()
	sender := uc.NewSender(settings.SMTP)

	body, err := mail.RenderSMTPTest(mail.SMTPTestData{SentAt: time.Now()})
	if err != nil {
		return err
	}

	return sender.Send(settings.Website.Email, mail.SubjectSMTPTest, body)
}
