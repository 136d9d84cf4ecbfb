package services

import (
	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Notifier delivers a composed report to a recipient
type Notifier interface {
	Send(recipient, subject, textBody, htmlBody string) error
}

// EmailNotifier sends the report over SMTP as a multipart/alternative message
// with plain-text and HTML bodies. Delivery is at-most-once per run; a failed
// send is fatal and the next scheduled run is the retry mechanism.
type EmailNotifier struct {
	sender   string
	password string
	host     string
	port     int
}

// NewEmailNotifier creates an SMTP notifier. The sender address doubles as
// the SMTP username, matching app-password setups.
func NewEmailNotifier(sender, password, host string, port int) *EmailNotifier {
	return &EmailNotifier{
		sender:   sender,
		password: password,
		host:     host,
		port:     port,
	}
}

// Send delivers the report. STARTTLS negotiation and authentication are
// handled by the dialer.
func (n *EmailNotifier) Send(recipient, subject, textBody, htmlBody string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", n.sender)
	message.SetHeader("To", recipient)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", textBody)
	message.AddAlternative("text/html", htmlBody)

	dialer := gomail.NewDialer(n.host, n.port, n.sender, n.password)

	if err := dialer.DialAndSend(message); err != nil {
		return shared.WrapError(err, shared.ErrorCategoryDelivery, shared.CodeMailSendFailed, "Send", true)
	}

	logrus.WithFields(logrus.Fields{
		"component": "EmailNotifier",
		"recipient": recipient,
		"subject":   subject,
	}).Info("Email sent successfully")

	return nil
}
