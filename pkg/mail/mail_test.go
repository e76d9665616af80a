package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/portfolio/contact-api/internal/model"
)

type fakeDialer struct {
	mu       sync.Mutex
	sent     []*gomail.Message
	err      error
	block    chan struct{}
	attempts int
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	f.attempts++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.sent = append(f.sent, m...)
	f.mu.Unlock()
	return nil
}

var ist = time.FixedZone("IST", 5*60*60+30*60)

func newTestClient(d dialer, timeout time.Duration) *Client {
	return &Client{
		dialer:  d,
		host:    "smtp.example.com",
		from:    "owner@example.com",
		to:      "owner@example.com",
		loc:     ist,
		timeout: timeout,
	}
}

func testSubmission() *model.ContactSubmission {
	return &model.ContactSubmission{
		ID:        7,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Subject:   "Hello",
		Message:   "Test message",
		Timestamp: "2026-10-14 09:30:00",
	}
}

func TestNewClient_DialerSettings(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantSSL     bool
		wantRequire bool
		wantSkip    bool
	}{
		{
			name:        "mandatory STARTTLS on 587",
			cfg:         Config{Host: "smtp.gmail.com", Port: 587, Username: "me@gmail.com", Password: "pw", UseTLS: true},
			wantRequire: true,
		},
		{
			name:        "implicit TLS on 465",
			cfg:         Config{Host: "smtp.gmail.com", Port: 465, Username: "me@gmail.com", Password: "pw", UseTLS: true},
			wantSSL:     true,
			wantRequire: true,
		},
		{
			name:    "explicit SSL flag",
			cfg:     Config{Host: "relay.internal", Port: 2465, UseSSL: true},
			wantSSL: true,
		},
		{
			name: "STARTTLS optional still verifies certificates",
			cfg:  Config{Host: "relay.internal", Port: 25},
		},
		{
			name:        "self-signed relay opt-in",
			cfg:         Config{Host: "relay.internal", Port: 587, UseTLS: true, InsecureSkipVerify: true},
			wantRequire: true,
			wantSkip:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.cfg)
			d, ok := c.dialer.(*smtpDialer)
			require.True(t, ok, "expected *smtpDialer")
			assert.Equal(t, tt.cfg.Host, d.host)
			assert.Equal(t, tt.cfg.Port, d.port)
			assert.Equal(t, tt.wantSSL, d.ssl)
			assert.Equal(t, tt.wantRequire, d.requireTLS)
			require.NotNil(t, d.tlsConfig)
			assert.Equal(t, tt.wantSkip, d.tlsConfig.InsecureSkipVerify)
			assert.Equal(t, tt.cfg.Host, d.tlsConfig.ServerName)
			assert.Equal(t, uint16(tls.VersionTLS12), d.tlsConfig.MinVersion)
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{Host: "smtp.gmail.com", Port: 587, Username: "me@gmail.com", Password: "pw"})
	assert.Equal(t, "me@gmail.com", c.from)
	assert.Equal(t, "me@gmail.com", c.to)
	assert.Equal(t, defaultTimeout, c.timeout)

	c = NewClient(Config{Username: "me@gmail.com", From: "site@example.com", To: "inbox@example.com", Timeout: time.Second})
	assert.Equal(t, "site@example.com", c.from)
	assert.Equal(t, "inbox@example.com", c.to)
	assert.Equal(t, time.Second, c.timeout)
}

func TestClient_Notify_SendsOneMessage(t *testing.T) {
	d := &fakeDialer{}
	c := newTestClient(d, time.Second)

	require.NoError(t, c.Notify(context.Background(), testSubmission()))

	require.Len(t, d.sent, 1)
	msg := d.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"jane@example.com"}, msg.GetHeader("Reply-To"))
	assert.Equal(t, []string{"New Contact Form Submission: Hello"}, msg.GetHeader("Subject"))
}

func TestClient_Notify_FlattensHeaderLineBreaks(t *testing.T) {
	d := &fakeDialer{}
	c := newTestClient(d, time.Second)

	sub := testSubmission()
	sub.Subject = "Hi\r\nBcc: victim@example.com"
	require.NoError(t, c.Notify(context.Background(), sub))

	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"New Contact Form Submission: Hi Bcc: victim@example.com"}, d.sent[0].GetHeader("Subject"))
	assert.Empty(t, d.sent[0].GetHeader("Bcc"))
}

func TestClient_Notify_DialerError(t *testing.T) {
	d := &fakeDialer{err: errors.New("535 authentication failed")}
	c := newTestClient(d, time.Second)

	err := c.Notify(context.Background(), testSubmission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 authentication failed")
	assert.Equal(t, 1, d.attempts, "mail must not be retried")
}

func TestClient_Notify_Timeout(t *testing.T) {
	d := &fakeDialer{block: make(chan struct{})}
	t.Cleanup(func() { close(d.block) })
	c := newTestClient(d, 20*time.Millisecond)

	start := time.Now()
	err := c.Notify(context.Background(), testSubmission())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRenderBody_ContainsAllFields(t *testing.T) {
	body, err := renderBody(ist, testSubmission())
	require.NoError(t, err)

	for _, want := range []string{
		"Time (IST): 2026-10-14 09:30:00",
		"Name: Jane Doe",
		"Email: jane@example.com",
		"Subject: Hello",
		"Message:\nTest message",
	} {
		assert.Contains(t, body, want)
	}
}

func TestRenderBody_WithoutZone(t *testing.T) {
	body, err := renderBody(nil, testSubmission())
	require.NoError(t, err)
	assert.Contains(t, body, "Time: 2026-10-14 09:30:00")
}

func TestRenderBody_ZoneLabelFollowsDaylightSaving(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	sub := testSubmission()
	sub.Timestamp = "2026-07-01 12:00:00"
	body, err := renderBody(berlin, sub)
	require.NoError(t, err)
	assert.Contains(t, body, "Time (CEST): 2026-07-01 12:00:00")

	sub.Timestamp = "2026-01-15 12:00:00"
	body, err = renderBody(berlin, sub)
	require.NoError(t, err)
	assert.Contains(t, body, "Time (CET): 2026-01-15 12:00:00")
}
