package registry

import "errors"

// Session-category errors. Front ends map these to a distinguishable
// "recreate the session" response rather than a plain validation failure.
var (
	ErrSessionNotFound  = errors.New("invalid or expired game session")
	ErrSessionExpired   = errors.New("game session has expired")
	ErrTargetAlreadySet = errors.New("cannot set target number at this time")
	ErrTargetNotSet     = errors.New("target number has not been set yet")
)

// IsSessionGone reports whether err means the session id no longer (or
// never did) refer to a live session.
func IsSessionGone(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired)
}
