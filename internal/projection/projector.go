package projection

import (
	"context"
	"encoding/json"
	"errors"
	"net/mail"
	"strings"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/infrastructure/search"
	"github.com/oksasatya/go-account-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// ErrMalformedEvent marks deliveries that can never be applied; they should
// be dropped rather than requeued.
var ErrMalformedEvent = errors.New("malformed account event")

// Indexer is satisfied by search.UserIndex. Put must ignore a document
// whose Version is not newer than the one already indexed.
type Indexer interface {
	Put(ctx context.Context, doc search.UserDocument) error
}

// Sender is satisfied by mailer.Mailgun.
type Sender interface {
	SendJob(ctx context.Context, job mailer.EmailJob) error
}

// Projector applies account events to the search index and sends the
// welcome mail for new accounts. Index and Mail are both optional.
type Projector struct {
	Index  Indexer
	Mail   Sender
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewProjector(cfg *config.Config, index Indexer, mail Sender, logger *logrus.Logger) *Projector {
	return &Projector{Index: index, Mail: mail, Cfg: cfg, Logger: logger}
}

// Handle decodes one queue delivery and applies it.
func (p *Projector) Handle(ctx context.Context, body []byte) error {
	var ev entity.AccountEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return oops.In("projector").Code("EVENT_DECODE_FAILED").Wrap(errors.Join(ErrMalformedEvent, err))
	}
	return p.Apply(ctx, ev)
}

// Apply projects a single event. Events may arrive out of order after a
// requeue; the per-user version decides which write wins, and deletes leave
// a tombstone. Index failures are returned so the delivery can be retried;
// mail failures are only logged.
func (p *Projector) Apply(ctx context.Context, ev entity.AccountEvent) error {
	if ev.UserID <= 0 || ev.Version <= 0 {
		return oops.In("projector").Code("EVENT_INVALID").With("type", ev.Type).Wrap(ErrMalformedEvent)
	}
	switch ev.Type {
	case entity.EventUserRegistered, entity.EventUserPromoted, entity.EventUserDeleted:
	default:
		return oops.In("projector").Code("EVENT_UNKNOWN_TYPE").With("type", ev.Type).Wrap(ErrMalformedEvent)
	}
	if p.Index != nil {
		if err := p.Index.Put(ctx, search.DocumentFromEvent(ev)); err != nil {
			return err
		}
	}
	if ev.Type == entity.EventUserRegistered {
		p.welcome(ctx, ev)
	}
	p.log().WithFields(logrus.Fields{"event": ev.Type, "user_id": ev.UserID, "version": ev.Version}).Debug("event applied")
	return nil
}

func (p *Projector) welcome(ctx context.Context, ev entity.AccountEvent) {
	if p.Mail == nil || p.Cfg == nil || !p.Cfg.MailSendEnabled {
		return
	}
	to, ok := emailAddress(ev.Username)
	if !ok {
		return
	}
	data := mailtpl.NewWelcomeData(p.Cfg, ev.Username, to,
		mailtpl.WithTime(ev.CreatedAt), mailtpl.WithAdmin(ev.IsAdmin))
	subject, text, html, err := mailtpl.Render(mailtpl.Welcome, data)
	if err != nil {
		p.log().WithError(err).Error("render welcome mail failed")
		return
	}
	if err := p.Mail.SendJob(ctx, mailer.EmailJob{To: to, Subject: subject, Text: text, HTML: html}); err != nil {
		p.log().WithError(err).WithField("user_id", ev.UserID).Warn("send welcome mail failed")
	}
}

func (p *Projector) log() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}

// emailAddress reports whether a username is a bare email address.
func emailAddress(username string) (string, bool) {
	if !strings.Contains(username, "@") {
		return "", false
	}
	addr, err := mail.ParseAddress(username)
	if err != nil || addr.Address != username {
		return "", false
	}
	return addr.Address, true
}
