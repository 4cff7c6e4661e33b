package services

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"tasktrack/internal/models"
)

type EmailService interface {
	SendDueSoonDigest(to string, tasks []models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendDueSoonDigest(to string, tasks []models.Task) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%d task(s) due soon", len(tasks)))

	var b strings.Builder
	b.WriteString("<h3>Tasks approaching their due date</h3><ul>")
	for i := range tasks {
		t := &tasks[i]
		due := "—"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "<li><b>%s</b> — %s, due <code>%s</code></li>",
			html.EscapeString(t.Title), t.Status, due)
	}
	b.WriteString("</ul>")
	m.SetBody("text/html", b.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send due-soon digest: %w", err)
	}
	return nil
}
