package mail

import (
	"bytes"
	"context"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:embed templates/*
var templateFiles embed.FS

var (
	resetText = texttemplate.Must(texttemplate.ParseFS(templateFiles, "templates/reset_password.txt"))
	resetHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFiles, "templates/reset_password.html"))
)

type resetData struct {
	Username string
	Link     string
}

// PasswordResetMailer renders the reset email and hands it to a Dispatcher.
type PasswordResetMailer struct {
	dispatcher Dispatcher
	sender     string
	baseURL    string
}

// NewPasswordResetMailer creates a PasswordResetMailer. Links point at
// baseURL/reset_password/<token>.
func NewPasswordResetMailer(dispatcher Dispatcher, sender, baseURL string) *PasswordResetMailer {
	return &PasswordResetMailer{
		dispatcher: dispatcher,
		sender:     sender,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SendPasswordReset queues the reset email for user.
func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, user *models.UserDB, token string) error {
	msg, err := m.Render(user, token)
	if err != nil {
		return err
	}
	return m.dispatcher.Dispatch(ctx, msg)
}

// Render builds the reset email for user without sending it.
func (m *PasswordResetMailer) Render(user *models.UserDB, token string) (models.MailMessage, error) {
	data := resetData{
		Username: user.Username,
		Link:     m.baseURL + "/reset_password/" + token,
	}

	var text, html bytes.Buffer
	if err := resetText.Execute(&text, data); err != nil {
		return models.MailMessage{}, err
	}
	if err := resetHTML.Execute(&html, data); err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{
		Subject:    "[Microblog] Reset Your Password",
		Sender:     m.sender,
		Recipients: []string{user.Email},
		TextBody:   text.String(),
		HTMLBody:   html.String(),
	}, nil
}
