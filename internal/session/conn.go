// Package session implements the authenticated transport (spec.md §4.4):
// a TLS-wrapped, line-delimited JSON channel with a per-match X25519 key
// agreement and HMAC-SHA256 envelope authentication. It is grounded on
// the original host/src/network.rs connection type, generalized from
// plain TCP to TLS and extended with the key exchange and HMAC sealing
// that spec.md adds on top of the original's unauthenticated channel.
package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/proof"
)

// Conn is one established, authenticated session. The underlying stream
// is shared between the send and receive paths, so every operation holds
// mu for its duration (spec.md §5's "shared resources" note).
type Conn struct {
	mu      sync.Mutex
	conn    net.Conn
	rw      *bufio.ReadWriter
	secret  []byte
	matchID uuid.UUID
	hasID   bool

	nextSeq     uint64
	expectedSeq uint64
}

func newConn(c net.Conn, rw *bufio.ReadWriter, secret []byte) *Conn {
	return &Conn{conn: c, rw: rw, secret: secret}
}

// HostHandshake runs the full host-side setup over an already-TLS-dialed
// net.Conn: the X25519 key exchange (host is the DH responder; the
// client/guest is the initiator), followed by generating a fresh
// match_id and exchanging BoardReady envelopes. It returns the ready
// Conn plus the opponent's declared name, commitment, and (if present)
// proof.
func HostHandshake(c net.Conn, playerName string, commitment model.Digest, p *proof.ProofData) (*Conn, string, model.Digest, *proof.ProofData, error) {
	rw := bufio.NewReadWriter(bufio.NewReader(c), bufio.NewWriter(c))
	secret, err := runKeyExchange(rw, false)
	if err != nil {
		return nil, "", model.Digest{}, nil, err
	}

	conn := newConn(c, rw, secret)
	conn.matchID = uuid.New()
	conn.hasID = true

	msg := BoardReadyMessage(commitment, playerName, p)
	if err := conn.send(msg); err != nil {
		return nil, "", model.Digest{}, nil, err
	}

	reply, err := conn.receive()
	if err != nil {
		return nil, "", model.Digest{}, nil, err
	}
	if reply.Kind != KindBoardReady || reply.Commitment == nil {
		return nil, "", model.Digest{}, nil, fmt.Errorf("%w: expected BoardReady from opponent during handshake", ErrProtocolViolation)
	}

	return conn, reply.PlayerName, digestValue(reply.Commitment), reply.Proof, nil
}

// ClientHandshake runs the full client-side setup: the X25519 key
// exchange (client is the DH initiator), then it waits for the host's
// BoardReady to adopt the host-assigned match_id, and finally sends its
// own BoardReady with that same match_id.
func ClientHandshake(c net.Conn, playerName string, commitment model.Digest, p *proof.ProofData) (*Conn, string, model.Digest, *proof.ProofData, error) {
	rw := bufio.NewReadWriter(bufio.NewReader(c), bufio.NewWriter(c))
	secret, err := runKeyExchange(rw, true)
	if err != nil {
		return nil, "", model.Digest{}, nil, err
	}

	conn := newConn(c, rw, secret)

	env, err := conn.receiveEnvelopeAdoptingMatchID()
	if err != nil {
		return nil, "", model.Digest{}, nil, err
	}
	if env.Payload.Kind != KindBoardReady || env.Payload.Commitment == nil {
		return nil, "", model.Digest{}, nil, fmt.Errorf("%w: expected BoardReady from host during handshake", ErrProtocolViolation)
	}

	msg := BoardReadyMessage(commitment, playerName, p)
	if err := conn.send(msg); err != nil {
		return nil, "", model.Digest{}, nil, err
	}

	return conn, env.Payload.PlayerName, digestValue(env.Payload.Commitment), env.Payload.Proof, nil
}

func digestValue(d *model.Digest) model.Digest {
	if d == nil {
		return model.Digest{}
	}
	return *d
}

// Send seals payload in a freshly-numbered Envelope and writes it as one
// JSON line. It is safe for concurrent use; calls serialize on mu.
func (c *Conn) Send(payload GameMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(payload)
}

func (c *Conn) send(payload GameMessage) error {
	env := newEnvelope(c.matchID, c.nextSeq, payload)
	signed, err := sign(env, c.secret)
	if err != nil {
		return err
	}

	b, err := json.Marshal(signed)
	if err != nil {
		return fmt.Errorf("%w: marshaling envelope: %v", ErrTransport, err)
	}
	if _, err := c.rw.Write(b); err != nil {
		return fmt.Errorf("%w: writing envelope: %v", ErrTransport, err)
	}
	if err := c.rw.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: writing envelope: %v", ErrTransport, err)
	}
	if err := c.rw.Flush(); err != nil {
		return fmt.Errorf("%w: flushing envelope: %v", ErrTransport, err)
	}

	c.nextSeq++
	return nil
}

// Receive reads one line, verifies its HMAC, match_id, and sequence
// number, and returns the payload. Any verification failure is
// session-fatal per spec.md §4.4/§7; the caller should close the
// connection on error rather than retry.
func (c *Conn) Receive() (GameMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	env, err := c.receive0()
	if err != nil {
		return GameMessage{}, err
	}
	return env.Payload, nil
}

func (c *Conn) receive() (GameMessage, error) {
	env, err := c.receive0()
	if err != nil {
		return GameMessage{}, err
	}
	return env.Payload, nil
}

// receiveEnvelopeAdoptingMatchID is used only during the client-side
// handshake, before a match_id has been adopted: it accepts whatever
// match_id the first envelope carries and adopts it, matching
// network.rs's "if we don't yet have a match_id, accept the first one
// seen".
func (c *Conn) receiveEnvelopeAdoptingMatchID() (Envelope, error) {
	return c.receive0()
}

func (c *Conn) receive0() (Envelope, error) {
	line, err := c.rw.ReadString('\n')
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: reading envelope: %v", ErrTransport, err)
	}

	var env Envelope
	if err := json.Unmarshal([]byte(line), &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: parsing envelope: %v", ErrTransport, err)
	}

	if !c.hasID {
		c.matchID = env.MatchID
		c.hasID = true
	}
	if env.MatchID != c.matchID {
		return Envelope{}, fmt.Errorf("%w: mismatched match_id: expected %s got %s", ErrSequenceError, c.matchID, env.MatchID)
	}

	if err := verify(env, c.secret); err != nil {
		return Envelope{}, err
	}

	if env.Seq != c.expectedSeq {
		return Envelope{}, fmt.Errorf("%w: unexpected sequence number: expected %d got %d", ErrSequenceError, c.expectedSeq, env.Seq)
	}
	c.expectedSeq++

	return env, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// MatchID returns the session's adopted match identifier.
func (c *Conn) MatchID() uuid.UUID {
	return c.matchID
}
