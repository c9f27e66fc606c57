package entity

import "time"

// Account event types published after a successful mutation.
const (
	EventUserRegistered = "user.registered"
	EventUserPromoted   = "user.promoted"
	EventUserDeleted    = "user.deleted"
)

// AccountEvent is the JSON payload put on the events queue.
// It never carries the password hash.
type AccountEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	OccurredAt time.Time `json:"occurred_at"`
	Version    int64     `json:"version"`
}

// NewAccountEvent snapshots u for the given event type.
func NewAccountEvent(typ string, u *User, at time.Time) AccountEvent {
	return AccountEvent{
		Type:       typ,
		UserID:     u.ID,
		Username:   u.Username,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt.UTC(),
		OccurredAt: at.UTC(),
		Version:    u.Version,
	}
}
