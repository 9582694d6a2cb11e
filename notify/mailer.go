package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type Kind string

const (
	KindWelcome       Kind = "welcome"
	KindStatusChange  Kind = "status_change"
	KindPaymentUpdate Kind = "payment_update"
)

// Message is one outbound notification. Payload keys feed the template for
// the message kind.
type Message struct {
	Kind      Kind
	Recipient string
	Payload   map[string]string
}

// Sender delivers one message. Implementations must not panic; a returned
// error is logged by the dispatcher and dropped.
type Sender interface {
	Send(msg Message) error
}

var subjects = map[Kind]string{
	KindWelcome:       "Welcome to HackOnX - registration received",
	KindStatusChange:  "HackOnX - your application status changed",
	KindPaymentUpdate: "HackOnX - payment update",
}

var bodies = map[Kind]*template.Template{
	KindWelcome: template.Must(template.New("welcome").Parse(
		"Hi {{.teamName}},\n\n" +
			"Your registration for HackOnX ({{.domain}} track) was received.\n" +
			"Your application id is {{.applicationId}}. Keep it safe, you will need it for uploads.\n\n" +
			"The HackOnX team")),
	KindStatusChange: template.Must(template.New("status").Parse(
		"Hi {{.teamName}},\n\n" +
			"Your HackOnX application ({{.domain}} track) moved to status: {{.status}}.\n" +
			"{{if .remarks}}Remarks from the organizers: {{.remarks}}\n{{end}}\n" +
			"The HackOnX team")),
	KindPaymentUpdate: template.Must(template.New("payment").Parse(
		"Hi {{.teamName}},\n\n" +
			"Your payment proof was reviewed, the result is: {{.paymentStatus}}.\n\n" +
			"The HackOnX team")),
}

// SMTPSender renders the template for the message kind and ships it over SMTP.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(msg Message) error {
	subject, ok := subjects[msg.Kind]
	if !ok {
		return fmt.Errorf("unknown notification kind: %s", msg.Kind)
	}

	var body bytes.Buffer
	if err := bodies[msg.Kind].Execute(&body, msg.Payload); err != nil {
		return fmt.Errorf("failed to render %s template: %w", msg.Kind, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return dialer.DialAndSend(m)
}
