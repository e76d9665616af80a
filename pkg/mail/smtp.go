package mail

import (
	"crypto/tls"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

var errNoStartTLS = errors.New("relay does not offer STARTTLS")

// smtpDialer delivers messages through net/smtp. It is immutable after
// NewClient and every call opens its own connection, so concurrent sends
// share no state.
type smtpDialer struct {
	host     string
	port     int
	username string
	password string
	// ssl dials with implicit TLS.
	ssl bool
	// requireTLS refuses relays that do not offer STARTTLS, before any
	// credentials or message data are written.
	requireTLS bool
	tlsConfig  *tls.Config
	// timeout bounds the dial and the whole SMTP session.
	timeout time.Duration
}

func (d *smtpDialer) DialAndSend(msgs ...*gomail.Message) error {
	c, err := d.dial()
	if err != nil {
		return err
	}
	defer c.Close()

	send := gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		if err := c.Mail(from); err != nil {
			return errors.Wrap(err, "relay rejected sender")
		}
		for _, addr := range to {
			if err := c.Rcpt(addr); err != nil {
				return errors.Wrapf(err, "relay rejected recipient %s", addr)
			}
		}
		w, err := c.Data()
		if err != nil {
			return errors.Wrap(err, "relay rejected DATA")
		}
		if _, err := msg.WriteTo(w); err != nil {
			_ = w.Close()
			return errors.Wrap(err, "failed to write message")
		}
		return errors.Wrap(w.Close(), "relay did not accept message")
	})
	if err := gomail.Send(send, msgs...); err != nil {
		return err
	}
	// The relay has accepted the message; a failed QUIT changes nothing.
	_ = c.Quit()
	return nil
}

func (d *smtpDialer) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(d.host, strconv.Itoa(d.port))
	conn, err := net.DialTimeout("tcp", addr, d.timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", addr)
	}
	if err := conn.SetDeadline(time.Now().Add(d.timeout)); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to set relay deadline")
	}
	if d.ssl {
		conn = tls.Client(conn, d.tlsConfig.Clone())
	}

	c, err := smtp.NewClient(conn, d.host)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "no greeting from %s", addr)
	}

	if !d.ssl {
		ok, _ := c.Extension("STARTTLS")
		switch {
		case ok:
			if err := c.StartTLS(d.tlsConfig.Clone()); err != nil {
				_ = c.Close()
				return nil, errors.Wrapf(err, "STARTTLS with %s failed", addr)
			}
		case d.requireTLS:
			_ = c.Close()
			return nil, errors.Wrapf(errNoStartTLS, "refusing to send via %s", addr)
		}
	}

	if d.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", d.username, d.password, d.host)); err != nil {
				_ = c.Close()
				return nil, errors.Wrapf(err, "authentication with %s failed", addr)
			}
		}
	}
	return c, nil
}
