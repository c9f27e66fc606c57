package entity

// Session is the server-side state behind an opaque client token.
// An empty Username means the session is anonymous.
type Session struct {
	ID       string
	Username string
}

// Anonymous reports whether no user is bound to the session.
func (s *Session) Anonymous() bool {
	return s == nil || s.Username == ""
}
