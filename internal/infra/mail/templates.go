package mail

import (
	"bytes"
	"text/template"
)

// Subject lines for the three fixed messages the core sends.
const (
	SubjectOperatorAlert  = "New Dubai Property Guide Request"
	SubjectAcknowledgment = "Your Dubai Property Investment Guide"
	SubjectSMTPTest       = "SMTP Test Email"
)

var operatorAlertTmpl = template.Must(template.New("operatorAlert").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">New Guide Request</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Lead ID:</strong> {{.LeadID}}</p>
  <hr>
  <p style="color: #6b7280; font-size: 14px;">
    This request was submitted from the landing page.
  </p>
</div>
`))

var acknowledgmentTmpl = template.Must(template.New("acknowledgment").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Thank you for your interest!</h2>
  <p>Dear {{.Name}},</p>
  <p>Thank you for requesting our comprehensive Dubai Property Investment Guide.</p>
  <p>Our expert team will contact you within 24 hours to provide:</p>
  <ul>
    <li>📊 Personalized investment analysis</li>
    <li>🏠 Property recommendations</li>
    <li>💰 Financing options</li>
    <li>⚖️ Legal guidance</li>
  </ul>
  <p><strong>Contact us:</strong></p>
  <p>📞 {{.Phone}}</p>
  <p>📧 {{.Email}}</p>
  <hr>
  <p style="color: #6b7280; font-size: 14px;">
    {{.CompanyName}} - Your trusted partner for Dubai real estate investment
  </p>
</div>
`))

var smtpTestTmpl = template.Must(template.New("smtpTest").Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2>SMTP Configuration Test</h2>
  <p>This is a test email to verify your SMTP configuration is working correctly.</p>
  <p>Sent at: {{.SentAt.UTC.Format "2006-01-02T15:04:05Z07:00"}}</p>
</div>
`))

func RenderOperatorAlert(data OperatorAlertData) (string, error) {
	return render(operatorAlertTmpl, data)
}

func RenderAcknowledgment(data AcknowledgmentData) (string, error) {
	return render(acknowledgmentTmpl, data)
}

func RenderSMTPTest(data SMTPTestData) (string, error) {
	return render(smtpTestTmpl, data)
}

func render(t *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
