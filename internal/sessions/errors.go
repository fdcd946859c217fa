package sessions

import "errors"

var (
	// ErrSessionExpired is returned when a session is read past its end time.
	ErrSessionExpired = errors.New("session expired")
	// ErrAlreadyJoined is returned when a player already has a record for the session.
	ErrAlreadyJoined = errors.New("player already joined this session")
)
