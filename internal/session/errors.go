package session

import "errors"

// Sentinel errors matching the session-fatal error kinds of spec.md §7.
// Every error in this list ends the session; the caller is expected to
// close the underlying connection.
var (
	ErrTransport         = errors.New("session: transport error")
	ErrAuthFailure       = errors.New("session: envelope authentication failed")
	ErrSequenceError     = errors.New("session: sequence or match_id mismatch")
	ErrProtocolViolation = errors.New("session: unexpected message kind")
)
