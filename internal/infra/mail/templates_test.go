package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOperatorAlert(t *testing.T) {
	body, err := RenderOperatorAlert(OperatorAlertData{
		Name:   "Ana",
		Email:  "a@x.com",
		Phone:  "123",
		LeadID: "lead-1",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "a@x.com")
	assert.Contains(t, body, "123")
	assert.Contains(t, body, "lead-1")
}

func TestRenderAcknowledgment(t *testing.T) {
	body, err := RenderAcknowledgment(AcknowledgmentData{
		Name:        "Ana",
		CompanyName: "Dubai Property Pro",
		Phone:       "+971 55 799 4258",
		Email:       "ops@example.com",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Dear Ana,")
	assert.Contains(t, body, "Dubai Property Pro")
	assert.Contains(t, body, "+971 55 799 4258")
	assert.Contains(t, body, "ops@example.com")
}

func TestRenderSMTPTest(t *testing.T) {
	sentAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	body, err := RenderSMTPTest(SMTPTestData{SentAt: sentAt})
	require.NoError(t, err)

	assert.Contains(t, body, "2025-03-14T15:09:26Z")
}
