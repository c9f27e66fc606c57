package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// EventPublisher delivers account events; helpers.RabbitPublisher implements it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// publish is best-effort: the mutation has already committed, so a delivery
// failure is logged and swallowed.
func (s *Service) publish(ctx context.Context, typ string, u *entity.User) {
	if s.Events == nil || u == nil {
		return
	}
	ev := entity.NewAccountEvent(typ, u, s.now())
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"event": typ, "user_id": u.ID}).Warn("publish account event failed")
	}
}
