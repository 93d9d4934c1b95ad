package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
	"github.com/propertypro/leads-backend/internal/infra/mail"
	"github.com/propertypro/leads-backend/internal/infra/queue"
	"github.com/propertypro/leads-backend/internal/usecase"
)

// MockLeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) All(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadStore) Append(ctx context.Context, lead entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadStore) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsStore
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Read() entity.Settings {
	args := m.Called()
	return args.Get(0).(entity.Settings)
}

func (m *MockSettingsStore) Write(settings entity.Settings) error {
	args := m.Called(settings)
	return args.Error(0)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishCampaignDispatched(ctx context.Context, payload queue.CampaignDispatchedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func factoryFor(sender usecase.MailSender) usecase.SenderFactory {
	return func(entity.SMTPSettings) usecase.MailSender {
		return sender
	}
}

func testSettings() entity.Settings {
	s := entity.DefaultSettings()
	s.Website.Email = "ops@example.com"
	return s
}

func TestSubmitLeadSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadStore)
	mockSettings := new(MockSettingsStore)
	mockSender := new(MockMailSender)

	var stored entity.Lead
	mockLeads.On("Append", ctx, mock.AnythingOfType("entity.Lead")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(entity.Lead)
		}).
		Return(nil)
	mockSettings.On("Read").Return(testSettings())
	mockSender.On("Send", "ops@example.com", mail.SubjectOperatorAlert, mock.Anything).Return(nil)
	mockSender.On("Send", "a@x.com", mail.SubjectAcknowledgment, mock.Anything).Return(nil)

	uc := usecase.NewSubmitLeadUseCase(mockLeads, mockSettings, factoryFor(mockSender), nil, zap.NewNop())

	lead, err := uc.Execute(ctx, usecase.SubmitLeadInput{
		Name:  "Ana",
		Email: "a@x.com",
		Phone: "123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, []string{}, lead.Tags)
	assert.Equal(t, entity.SourceLandingPage, lead.Source)
	assert.Nil(t, lead.Value)
	assert.False(t, lead.CreatedAt.IsZero())

	mockLeads.AssertNumberOfCalls(t, "Append", 1)
	assert.Equal(t, lead.ID, stored.ID)

	// Operator alert first, then visitor acknowledgment.
	mockSender.AssertNumberOfCalls(t, "Send", 2)
	mockSender.AssertCalled(t, "Send", "ops@example.com", mail.SubjectOperatorAlert, mock.Anything)
	mockSender.AssertCalled(t, "Send", "a@x.com", mail.SubjectAcknowledgment, mock.Anything)
}

func TestSubmitLeadGeneratesUniqueIDs(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadStore)
	mockSettings := new(MockSettingsStore)
	mockSender := new(MockMailSender)

	mockLeads.On("Append", ctx, mock.Anything).Return(nil)
	mockSettings.On("Read").Return(testSettings())
	mockSender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewSubmitLeadUseCase(mockLeads, mockSettings, factoryFor(mockSender), nil, zap.NewNop())

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		lead, err := uc.Execute(ctx, usecase.SubmitLeadInput{Name: "Ana", Email: "a@x.com", Phone: "123"})
		require.NoError(t, err)
		assert.False(t, seen[lead.ID], "duplicate lead id %s", lead.ID)
		seen[lead.ID] = true
	}
}

func TestSubmitLeadMissingFieldHasNoSideEffects(t *testing.T) {
	ctx := context.Background()

	cases := []usecase.SubmitLeadInput{
		{Email: "a@x.com", Phone: "123"},
		{Name: "Ana", Phone: "123"},
		{Name: "Ana", Email: "a@x.com"},
		{Name: "  ", Email: "a@x.com", Phone: "123"},
		{},
	}

	for _, input := range cases {
		mockLeads := new(MockLeadStore)
		mockSettings := new(MockSettingsStore)
		mockSender := new(MockMailSender)

		uc := usecase.NewSubmitLeadUseCase(mockLeads, mockSettings, factoryFor(mockSender), nil, zap.NewNop())

		lead, err := uc.Execute(ctx, input)
		require.Error(t, err)
		assert.True(t, usecase.IsDomainError(err))
		assert.Nil(t, lead)

		mockLeads.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		mockSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSubmitLeadKeepsLeadWhenAcknowledgmentFails(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadStore)
	mockSettings := new(MockSettingsStore)
	mockSender := new(MockMailSender)

	mockLeads.On("Append", ctx, mock.Anything).Return(nil)
	mockSettings.On("Read").Return(testSettings())
	mockSender.On("Send", "ops@example.com", mock.Anything, mock.Anything).Return(nil)
	mockSender.On("Send", "a@x.com", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	uc := usecase.NewSubmitLeadUseCase(mockLeads, mockSettings, factoryFor(mockSender), nil, zap.NewNop())

	_, err := uc.Execute(ctx, usecase.SubmitLeadInput{Name: "Ana", Email: "a@x.com", Phone: "123"})
	require.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))

	// The lead was persisted before the sends; no rollback.
	mockLeads.AssertNumberOfCalls(t, "Append", 1)
}

func TestSubmitLeadPublishesEventBestEffort(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadStore)
	mockSettings := new(MockSettingsStore)
	mockSender := new(MockMailSender)
	mockEvents := new(MockEventPublisher)

	mockLeads.On("Append", ctx, mock.Anything).Return(nil)
	mockSettings.On("Read").Return(testSettings())
	mockSender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("PublishLeadCaptured", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := usecase.NewSubmitLeadUseCase(mockLeads, mockSettings, factoryFor(mockSender), mockEvents, zap.NewNop())

	// A failed event publish must not fail the submission.
	lead, err := uc.Execute(ctx, usecase.SubmitLeadInput{Name: "Ana", Email: "a@x.com", Phone: "123"})
	require.NoError(t, err)
	assert.NotNil(t, lead)
	mockEvents.AssertNumberOfCalls(t, "PublishLeadCaptured", 1)
}
