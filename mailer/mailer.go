package mailer

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends templated notification mail over SMTP. Certificate
// verification is deliberately relaxed: cPanel-hosted mail servers routinely
// present certificates that do not match the SMTP hostname.
type Mailer struct {
	host     string
	port     int
	secure   bool
	username string
	password string

	careersEmail string
	supportEmail string
}

func New() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 465
	}
	return &Mailer{
		host:         os.Getenv("SMTP_HOST"),
		port:         port,
		secure:       os.Getenv("SMTP_SECURE") == "true",
		username:     os.Getenv("SMTP_USER"),
		password:     os.Getenv("SMTP_PASSWORD"),
		careersEmail: os.Getenv("CAREERS_EMAIL"),
		supportEmail: os.Getenv("SUPPORT_EMAIL"),
	}
}

func (m *Mailer) dialer() *gomail.Dialer {
	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	d.SSL = m.secure
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	return d
}

// Attachment is an in-memory file attached to an outgoing message.
type Attachment struct {
	FileName string
	MimeType string
	Content  []byte
}

func (m *Mailer) send(to, subject, body string, replyTo string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}
	msg.SetBody("text/plain", body)

	for _, att := range attachments {
		content := att.Content
		msg.Attach(att.FileName,
			gomail.SetHeader(map[string][]string{"Content-Type": {att.MimeType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}))
	}

	return m.dialer().DialAndSend(msg)
}

type JobApplication struct {
	FullName  string
	Email     string
	Phone     string
	Position  string
	Message   string
	ResumeURL string
}

func (m *Mailer) SendJobApplication(app JobApplication, resume *Attachment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "New job application for %s\n\n", app.Position)
	fmt.Fprintf(&b, "Name:  %s\n", app.FullName)
	fmt.Fprintf(&b, "Email: %s\n", app.Email)
	if app.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", app.Phone)
	}
	if app.ResumeURL != "" {
		fmt.Fprintf(&b, "Resume: %s\n", app.ResumeURL)
	}
	if app.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", app.Message)
	}

	subject := fmt.Sprintf("Job application: %s — %s", app.Position, app.FullName)
	if resume != nil {
		return m.send(m.careersEmail, subject, b.String(), app.Email, *resume)
	}
	return m.send(m.careersEmail, subject, b.String(), app.Email)
}

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

func (m *Mailer) SendContactMessage(msg ContactMessage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact form message\n\n")
	fmt.Fprintf(&b, "Name:  %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", msg.Phone)
	}
	fmt.Fprintf(&b, "\n%s\n", msg.Message)

	subject := msg.Subject
	if subject == "" {
		subject = fmt.Sprintf("Contact form: %s", msg.Name)
	}
	return m.send(m.supportEmail, subject, b.String(), msg.Email)
}

type CoverageRequest struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Details  string
}

func (m *Mailer) SendCoverageRequest(req CoverageRequest) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Coverage request\n\n")
	fmt.Fprintf(&b, "Name:     %s\n", req.Name)
	fmt.Fprintf(&b, "Email:    %s\n", req.Email)
	fmt.Fprintf(&b, "Phone:    %s\n", req.Phone)
	fmt.Fprintf(&b, "Location: %s\n", req.Location)
	if req.Details != "" {
		fmt.Fprintf(&b, "\n%s\n", req.Details)
	}
	return m.send(m.supportEmail, fmt.Sprintf("Coverage request: %s", req.Location), b.String(), req.Email)
}

type BusinessQuote struct {
	Company      string
	ContactName  string
	Email        string
	Phone        string
	Requirements string
}

func (m *Mailer) SendBusinessQuote(q BusinessQuote) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Business quote request\n\n")
	fmt.Fprintf(&b, "Company: %s\n", q.Company)
	fmt.Fprintf(&b, "Contact: %s\n", q.ContactName)
	fmt.Fprintf(&b, "Email:   %s\n", q.Email)
	fmt.Fprintf(&b, "Phone:   %s\n", q.Phone)
	fmt.Fprintf(&b, "\n%s\n", q.Requirements)
	return m.send(m.supportEmail, fmt.Sprintf("Business quote: %s", q.Company), b.String(), q.Email)
}

type CallSchedule struct {
	Name          string
	Email         string
	Phone         string
	PreferredTime time.Time
	Topic         string
}

func (m *Mailer) SendCallSchedule(cs CallSchedule) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Call scheduling request\n\n")
	fmt.Fprintf(&b, "Name:  %s\n", cs.Name)
	fmt.Fprintf(&b, "Email: %s\n", cs.Email)
	fmt.Fprintf(&b, "Phone: %s\n", cs.Phone)
	fmt.Fprintf(&b, "Preferred time: %s\n", cs.PreferredTime.Format(time.RFC1123))
	if cs.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", cs.Topic)
	}
	return m.send(m.supportEmail, fmt.Sprintf("Schedule a call: %s", cs.Name), b.String(), cs.Email)
}
