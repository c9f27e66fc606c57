package templates

import (
	"time"

	"github.com/oksasatya/go-account-service/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithAdmin(isAdmin bool) Option { return func(d *EmailData) { d.IsAdmin = isAdmin } }

// NewWelcomeData fills the branding fields from cfg, then applies opts.
func NewWelcomeData(cfg *config.Config, username, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Username:       username,
		RecipientEmail: recipient,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,

		LogoURL:    cfg.LogoURL,
		SupportURL: cfg.SupportURL,
		LoginURL:   cfg.LoginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
