package models

// MailMessage is an outgoing email.
type MailMessage struct {
	Subject    string   `json:"subject"`
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	TextBody   string   `json:"text_body"`
	HTMLBody   string   `json:"html_body"`
}
