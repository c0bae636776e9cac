package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var leadNotificationTmpl = template.Must(template.New("new-lead").Parse(`
<p>A new lead just arrived:</p>
<ul>
  <li><strong>Name:</strong> {{.Name}}</li>
  <li><strong>Email:</strong> {{.Email}}</li>
  <li><strong>Status:</strong> {{.Status}}</li>
</ul>
`))

func NewEmailSender(host string, port int, user, password, from, salesTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		SalesTo:  salesTo,
	}
}

// SendNewLead emails the configured sales inbox about a captured lead.
func (s *EmailSender) SendNewLead(name, email, status string) error {
	data := LeadNotificationData{
		Name:   name,
		Email:  email,
		Status: status,
	}

	var body bytes.Buffer
	if err := leadNotificationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.SalesTo)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}
