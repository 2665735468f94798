package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Client represents the outbound mail client.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

// NewClient initializes a Client.
func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{
		dialer: dialer,
		from:   from,
		domain: domain,
	}
}

// SendNotificationEmail sends one rendered notification email. The error is
// returned to the caller so a rejected recipient can be logged without
// affecting the rest of the batch.
func (c *Client) SendNotificationEmail(to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()

	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return c.dialer.DialAndSend(msg)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
