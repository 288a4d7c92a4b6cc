package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Mailer dispatches outbound mail. Services depend on this interface so tests
// can capture sends without an SMTP server.
type Mailer interface {
	SendPasswordResetEmail(to, username, resetURL string) error
}

const resetEmailBody = `
<b>Please click on the following link, or paste it into your browser to complete the process:</b>
<a href="{{.ResetURL}}">{{.ResetURL}}</a>
<p>If you did not request a password reset for {{.Username}}, you can ignore this email.</p>
`

var resetEmailTemplate = template.Must(template.New("reset").Parse(resetEmailBody))

// SMTPMailer sends mail through an SMTP server via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP server.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendPasswordResetEmail emails the reset link to the user.
func (s *SMTPMailer) SendPasswordResetEmail(to, username, resetURL string) error {
	var body bytes.Buffer
	if err := resetEmailTemplate.Execute(&body, map[string]string{
		"Username": username,
		"ResetURL": resetURL,
	}); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Forgot password")
	m.SetBody("text/html", body.String())

	return s.dialer.DialAndSend(m)
}
