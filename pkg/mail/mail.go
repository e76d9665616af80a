// Package mail relays contact-form submissions to the site owner through an
// SMTP server using gomail.
package mail

import (
	"context"
	"crypto/tls"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/portfolio/contact-api/internal/model"
)

const (
	subjectPrefix  = "New Contact Form Submission: "
	defaultTimeout = 15 * time.Second
)

// Config describes the relay and the addresses used for notifications.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// UseTLS makes STARTTLS mandatory: a relay that does not offer it is
	// refused before credentials are sent. When false, STARTTLS is still used
	// if offered.
	UseTLS bool
	// UseSSL dials with implicit TLS. Port 465 implies it.
	UseSSL bool
	// InsecureSkipVerify accepts any relay certificate. Only for local relays
	// with self-signed certs.
	InsecureSkipVerify bool

	From string // sender address
	To   string // owner address receiving notifications

	// Location is the zone submission timestamps are written in. Its
	// abbreviation at the submission time is printed next to the timestamp.
	Location *time.Location
	Timeout  time.Duration
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends one notification email per submission. It never retries.
type Client struct {
	dialer  dialer
	host    string
	from    string
	to      string
	loc     *time.Location
	timeout time.Duration
}

// NewClient builds a Client from cfg. No connection is made until Notify.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	to := cfg.To
	if to == "" {
		to = cfg.Username
	}

	d := &smtpDialer{
		host:       cfg.Host,
		port:       cfg.Port,
		username:   cfg.Username,
		password:   cfg.Password,
		ssl:        cfg.UseSSL || cfg.Port == 465,
		requireTLS: cfg.UseTLS,
		tlsConfig: &tls.Config{
			ServerName:         cfg.Host,
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in via MAIL_INSECURE_SKIP_VERIFY
		},
		timeout: timeout,
	}

	slog.Info("mail client configured",
		"host", cfg.Host,
		"port", cfg.Port,
		"ssl", d.ssl,
		"require_starttls", d.requireTLS,
		"insecure_skip_verify", cfg.InsecureSkipVerify,
		"timeout", timeout.String(),
	)

	return &Client{
		dialer:  d,
		host:    cfg.Host,
		from:    from,
		to:      to,
		loc:     cfg.Location,
		timeout: timeout,
	}
}

// Notify emails sub to the owner. It returns once the relay accepted the
// message, the relay failed, or the client timeout elapsed. On timeout the
// in-flight send is abandoned; its connection deadline ends it.
func (c *Client) Notify(ctx context.Context, sub *model.ContactSubmission) error {
	msg, err := c.buildMessage(sub)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrapf(err, "failed to send mail via %s", c.host)
		}
		slog.Debug("notification mail sent", "contact_id", sub.ID, "host", c.host)
		return nil
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "mail send via %s did not complete", c.host)
	}
}

func (c *Client) buildMessage(sub *model.ContactSubmission) (*gomail.Message, error) {
	body, err := renderBody(c.loc, sub)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", c.to)
	msg.SetHeader("Reply-To", headerSafe(sub.Email))
	msg.SetHeader("Subject", subjectPrefix+headerSafe(sub.Subject))
	msg.SetBody("text/plain", body)
	return msg, nil
}

var headerReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerSafe flattens line breaks so visitor input cannot add headers.
func headerSafe(s string) string {
	return headerReplacer.Replace(s)
}
