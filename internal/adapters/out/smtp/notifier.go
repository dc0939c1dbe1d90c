// Package smtp sends customer notifications over plain SMTP. The notifier
// speaks to the configured relay directly so delivery failures surface to the
// outbox drain job, which owns the retry schedule.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Config holds the SMTP relay settings. User and Pass may be empty for
// relays without authentication (MailHog in development).
type Config struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	FromName string
	StartTLS bool
}

// Notifier implements ports.Notifier over SMTP.
type Notifier struct {
	cfg         Config
	dialTimeout time.Duration
}

// NewNotifier creates an SMTP notifier.
func NewNotifier(cfg Config) *Notifier {
	return &Notifier{
		cfg:         cfg,
		dialTimeout: 5 * time.Second,
	}
}

// Send delivers one plain-text message to the recipient.
func (n *Notifier) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("smtp: recipient is required")
	}

	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)

	dialer := &net.Dialer{Timeout: n.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client failed: %w", err)
	}
	defer client.Quit()

	if n.cfg.StartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return fmt.Errorf("smtp starttls not supported by server")
		}
		if err = client.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls failed: %w", err)
		}
	}

	if n.cfg.User != "" && n.cfg.Pass != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
			if err = client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth failed: %w", err)
			}
		}
	}

	if err = client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from failed: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("smtp rcpt failed (%s): %w", recipient, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data failed: %w", err)
	}
	if _, err = w.Write([]byte(n.buildMessage(recipient, subject, body))); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write failed: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp data close failed: %w", err)
	}

	return nil
}

func (n *Notifier) buildMessage(recipient, subject, body string) string {
	from := n.cfg.From
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", n.cfg.FromName), n.cfg.From)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}
