// Package config builds the process configuration from environment variables.
// It is loaded once at startup and treated as read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Kolkata must resolve on hosts without zoneinfo
)

const (
	defaultPort        = "5000"
	defaultMailServer  = "smtp.gmail.com"
	defaultMailPort    = 587
	defaultMailTimeout = 15 * time.Second
	defaultDBPath      = "contacts.db"
	defaultTimeZone    = "Asia/Kolkata"
	defaultOrigin      = "*"
)

// ErrMissingMailCredentials is returned when EMAIL_USER or EMAIL_PASSWORD is unset.
var ErrMissingMailCredentials = errors.New("EMAIL_USER or EMAIL_PASSWORD not set")

// Config is the server configuration.
type Config struct {
	Port          string
	AllowedOrigin string
	Location      *time.Location
	Store         StoreConfig
	Mail          MailConfig
}

// StoreConfig selects the submission store.
type StoreConfig struct {
	// SQLitePath is used unless DatabaseURL is set.
	SQLitePath string
	// DatabaseURL switches storage to PostgreSQL.
	DatabaseURL string
}

// MailConfig describes the SMTP relay.
type MailConfig struct {
	Server string
	Port   int
	// UseTLS makes STARTTLS mandatory.
	UseTLS bool
	UseSSL bool
	// InsecureSkipVerify accepts self-signed relay certificates.
	InsecureSkipVerify bool
	Username           string
	Password           string
	DefaultSender      string
	Recipient          string
	Timeout            time.Duration
}

// Load reads the full server configuration using getenv (normally os.Getenv).
// Mail credentials are mandatory.
func Load(getenv func(string) string) (Config, error) {
	store := LoadStore(getenv)
	cfg := Config{
		Port:          withDefault(getenv("PORT"), defaultPort),
		AllowedOrigin: withDefault(getenv("ALLOWED_ORIGIN"), defaultOrigin),
		Store:         store,
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	loc, err := time.LoadLocation(withDefault(getenv("CONTACT_TIMEZONE"), defaultTimeZone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CONTACT_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	mail, err := loadMail(getenv)
	if err != nil {
		return Config{}, err
	}
	cfg.Mail = mail
	return cfg, nil
}

// LoadStore reads only the storage settings. Tools that never send mail use it.
func LoadStore(getenv func(string) string) StoreConfig {
	return StoreConfig{
		SQLitePath:  withDefault(getenv("CONTACTS_DB_PATH"), defaultDBPath),
		DatabaseURL: getenv("DATABASE_URL"),
	}
}

func loadMail(getenv func(string) string) (MailConfig, error) {
	m := MailConfig{
		Server:   withDefault(getenv("MAIL_SERVER"), defaultMailServer),
		Username: getenv("EMAIL_USER"),
		Password: getenv("EMAIL_PASSWORD"),
	}
	if m.Username == "" || m.Password == "" {
		return MailConfig{}, ErrMissingMailCredentials
	}
	m.DefaultSender = withDefault(getenv("MAIL_DEFAULT_SENDER"), m.Username)
	m.Recipient = withDefault(getenv("MAIL_RECIPIENT"), m.Username)

	var err error
	if m.Port, err = intVar(getenv, "MAIL_PORT", defaultMailPort); err != nil {
		return MailConfig{}, err
	}
	if m.UseTLS, err = boolVar(getenv, "MAIL_USE_TLS", true); err != nil {
		return MailConfig{}, err
	}
	if m.UseSSL, err = boolVar(getenv, "MAIL_USE_SSL", false); err != nil {
		return MailConfig{}, err
	}
	if m.InsecureSkipVerify, err = boolVar(getenv, "MAIL_INSECURE_SKIP_VERIFY", false); err != nil {
		return MailConfig{}, err
	}
	if m.Timeout, err = durationVar(getenv, "MAIL_TIMEOUT", defaultMailTimeout); err != nil {
		return MailConfig{}, err
	}
	return m, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > 65535 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}
