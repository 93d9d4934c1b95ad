package entity

type SMTPSettings struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Secure    bool   `json:"secure"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromName  string `json:"fromName"`
	FromEmail string `json:"fromEmail"`
}

type WebsiteSettings struct {
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	WhatsApp    string `json:"whatsapp"`
}

type Settings struct {
	SMTP    SMTPSettings    `json:"smtp"`
	Website WebsiteSettings `json:"website"`
}

// SettingsStore reads lazily and replaces wholesale. Read never fails:
// missing or corrupt data degrades to DefaultSettings.
type SettingsStore interface {
	Read() Settings
	Write(settings Settings) error
}

// DefaultSettings is returned whenever nothing has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		SMTP: SMTPSettings{
			Host:      "smtp.hostinger.com",
			Port:      465,
			Secure:    true,
			Username:  "noreply@rizarah.com",
			Password:  "test@123",
			FromName:  "Dubai Property Pro",
			FromEmail: "noreply@rizarah.com",
		},
		Website: WebsiteSettings{
			CompanyName: "Dubai Property Pro",
			Phone:       "+971 55 799 4258",
			Email:       "shibikabeer@gmail.com",
			WhatsApp:    "+971 55 799 4258",
		},
	}
}
