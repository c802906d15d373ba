package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Envelope is the on-wire framing for every message: a match id, a
// monotonic sequence number, the payload, and an optional HMAC auth
// token (spec.md §3, §4.4). Serialized as one JSON line per message.
type Envelope struct {
	MatchID   uuid.UUID   `json:"match_id"`
	Seq       uint64      `json:"seq"`
	Payload   GameMessage `json:"payload"`
	AuthToken *string     `json:"auth_token"`
}

// newEnvelope builds an unsigned envelope; sign fills in AuthToken.
func newEnvelope(matchID uuid.UUID, seq uint64, payload GameMessage) Envelope {
	return Envelope{MatchID: matchID, Seq: seq, Payload: payload, AuthToken: nil}
}

// sign computes the envelope's auth_token: base64-encoded HMAC-SHA256
// over the envelope's JSON serialization with auth_token cleared, keyed
// by secret (spec.md §4.4). It returns a copy with AuthToken populated.
func sign(env Envelope, secret []byte) (Envelope, error) {
	env.AuthToken = nil
	unsigned, err := json.Marshal(env)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: marshaling envelope for signing: %v", ErrTransport, err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(unsigned)
	tag := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	env.AuthToken = &tag
	return env, nil
}

// verify recomputes env's HMAC with auth_token cleared and compares it,
// in constant time, against the token actually present.
func verify(env Envelope, secret []byte) error {
	if env.AuthToken == nil {
		return fmt.Errorf("%w: missing auth_token", ErrAuthFailure)
	}
	got, err := base64.StdEncoding.DecodeString(*env.AuthToken)
	if err != nil {
		return fmt.Errorf("%w: malformed auth_token: %v", ErrAuthFailure, err)
	}

	unsigned := env
	unsigned.AuthToken = nil
	payload, err := json.Marshal(unsigned)
	if err != nil {
		return fmt.Errorf("%w: marshaling envelope for verification: %v", ErrTransport, err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	want := mac.Sum(nil)

	if !hmac.Equal(got, want) {
		return fmt.Errorf("%w: auth_token does not match", ErrAuthFailure)
	}
	return nil
}
