package models

// Settings holds site-wide admin configuration. There is exactly one.
// SMTPPass is kept in memory as entered.
type Settings struct {
	SMTPHost            string `json:"smtpHost" yaml:"smtpHost"`
	SMTPPort            string `json:"smtpPort" yaml:"smtpPort"`
	SMTPUser            string `json:"smtpUser" yaml:"smtpUser"`
	SMTPPass            string `json:"smtpPass" yaml:"smtpPass"`
	EnableNotifications bool   `json:"enableNotifications" yaml:"enableNotifications"`
	SiteName            string `json:"siteName" yaml:"siteName"`
}

// HasMailCredentials reports whether outbound mail can be attempted
func (s Settings) HasMailCredentials() bool {
	return s.SMTPUser != "" && s.SMTPPass != ""
}
