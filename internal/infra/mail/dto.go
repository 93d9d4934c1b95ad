package mail

import "time"

type OperatorAlertData struct {
	Name   string
	Email  string
	Phone  string
	LeadID string
}

type AcknowledgmentData struct {
	Name        string
	CompanyName string
	Phone       string
	Email       string
}

type SMTPTestData struct {
	SentAt time.Time
}
