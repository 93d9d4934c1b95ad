package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/queue"
)

// Campaign segments. Any other value matches zero leads, which is not
// an error.
const (
	SegmentAll       = "all"
	SegmentNew       = "new"
	SegmentQualified = "qualified"
	SegmentHighValue = "high-value"
)

const defaultCampaignWorkers = 5

type SendCampaignInput struct {
	Subject    string `json:"subject"`
	Content    string `json:"content"`
	Recipients string `json:"recipients"`
}

// RecipientFailure records one lead whose send rejected.
type RecipientFailure struct {
	LeadID string
	Email  string
	Err    error
}

type SendCampaignOutput struct {
	Matched  int
	Sent     int
	Failures []RecipientFailure
}

type SendCampaignUseCase struct {
	Leads     entity.LeadStore
	Settings  entity.SettingsStore
	NewSender SenderFactory
	Events    EventPublisherInterface
	Workers   int
	Log       *zap.Logger
}

func NewSendCampaignUseCase(
	leads entity.LeadStore,
	settings entity.SettingsStore,
	newSender SenderFactory,
	events EventPublisherInterface,
	workers int,
	log *zap.Logger,
) *SendCampaignUseCase {
	return &SendCampaignUseCase{
		Leads:     leads,
		Settings:  settings,
		NewSender: newSender,
		Events:    events,
		Workers:   workers,
		Log:       log,
	}
}

// Execute selects the segment against the current collection and fans the
// sends out over a bounded worker pool, collecting per-recipient results
// instead of failing the whole batch on the first rejection.
func (uc *SendCampaignUseCase) Execute(ctx context.Context, input SendCampaignInput) (*SendCampaignOutput, error) {
	leads, err := uc.Leads.All(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "STORAGE_ERROR",
			Message: "failed to load leads: " + err.Error(),
		}
	}

	targets := FilterSegment(leads, input.Recipients)
	out := &SendCampaignOutput{Matched: len(targets)}
	if len(targets) == 0 {
		return out, nil
	}

	settings := uc.Settings.Read()
	sender := uc.NewSender(settings.SMTP)

	workers := uc.Workers
	if workers <= 0 {
		workers = defaultCampaignWorkers
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	jobs := make(chan entity.Lead)
	results := make(chan RecipientFailure, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lead := range jobs {
				body := RenderContent(input.Content, lead.Name)
				if err := sender.Send(lead.Email, input.Subject, body); err != nil {
					results <- RecipientFailure{LeadID: lead.ID, Email: lead.Email, Err: err}
				}
			}
		}()
	}

	for _, lead := range targets {
		jobs <- lead
	}
	close(jobs)
	wg.Wait()
	close(results)

	for failure := range results {
		uc.Log.Warn("campaign send rejected",
			zap.String("lead_id", failure.LeadID),
			zap.String("email", failure.Email),
			zap.Error(failure.Err))
		out.Failures = append(out.Failures, failure)
	}
	out.Sent = out.Matched - len(out.Failures)

	if uc.Events != nil {
		payload := queue.CampaignDispatchedPayload{
			Subject:    input.Subject,
			Segment:    input.Recipients,
			Matched:    out.Matched,
			Sent:       out.Sent,
			Failed:     len(out.Failures),
			FinishedAt: time.Now().UTC(),
		}
		if err := uc.Events.PublishCampaignDispatched(ctx, payload); err != nil {
			uc.Log.Warn("failed to publish campaign.dispatched event", zap.Error(err))
		}
	}

	return out, nil
}

// FilterSegment evaluates the segment predicate per lead.
func FilterSegment(leads []entity.Lead, segment string) []entity.Lead {
	targets := make([]entity.Lead, 0, len(leads))
	for _, lead := range leads {
		var match bool
		switch segment {
		case SegmentAll:
			match = true
		case SegmentNew:
			match = lead.Status == entity.StatusNew
		case SegmentQualified:
			match = lead.Status == entity.StatusQualified
		case SegmentHighValue:
			match = lead.HasTag(entity.TagHighValue)
		}
		if match {
			targets = append(targets, lead)
		}
	}
	return targets
}

// RenderContent replaces every literal {name} with the lead's name.
// No other placeholders are supported.
func RenderContent(content, name string) string {
	return strings.ReplaceAll(content, "{name}", name)
}
