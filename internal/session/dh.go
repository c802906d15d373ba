package session

import (
	"bufio"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// dhLine is the single JSON line each peer sends carrying its ephemeral
// X25519 public value, exchanged inside the already-established TLS
// channel (spec.md §4.4).
type dhLine struct {
	Public string `json:"public"`
}

func generateEphemeral() (priv, pub [32]byte, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return priv, pub, fmt.Errorf("%w: generating ephemeral scalar: %v", ErrTransport, err)
	}
	p, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return priv, pub, fmt.Errorf("%w: computing ephemeral public value: %v", ErrTransport, err)
	}
	copy(pub[:], p)
	return priv, pub, nil
}

func writeDHLine(w *bufio.Writer, pub [32]byte) error {
	line := dhLine{Public: base64.StdEncoding.EncodeToString(pub[:])}
	b, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("%w: marshaling DH line: %v", ErrTransport, err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: writing DH line: %v", ErrTransport, err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: writing DH line: %v", ErrTransport, err)
	}
	return w.Flush()
}

func readDHLine(r *bufio.Reader) ([32]byte, error) {
	var out [32]byte
	raw, err := r.ReadString('\n')
	if err != nil {
		return out, fmt.Errorf("%w: reading DH line: %v", ErrTransport, err)
	}
	var line dhLine
	if err := json.Unmarshal([]byte(raw), &line); err != nil {
		return out, fmt.Errorf("%w: parsing DH line: %v", ErrTransport, err)
	}
	decoded, err := base64.StdEncoding.DecodeString(line.Public)
	if err != nil || len(decoded) != 32 {
		return out, fmt.Errorf("%w: malformed DH public value", ErrTransport)
	}
	copy(out[:], decoded)
	return out, nil
}

// deriveMatchSecret computes the shared X25519 secret and hashes it down
// to the 32-byte key that authenticates every subsequent envelope.
func deriveMatchSecret(priv, peerPub [32]byte) ([]byte, error) {
	shared, err := curve25519.X25519(priv[:], peerPub[:])
	if err != nil {
		return nil, fmt.Errorf("%w: computing shared secret: %v", ErrTransport, err)
	}
	sum := sha256.Sum256(shared)
	return sum[:], nil
}

// runKeyExchange performs the one-round ephemeral DH described in
// spec.md §4.4: the initiator sends its public value first, then reads
// the responder's; the responder reads first, then sends. Both derive
// the same match_secret = SHA256(shared_secret).
func runKeyExchange(rw *bufio.ReadWriter, initiator bool) ([]byte, error) {
	priv, pub, err := generateEphemeral()
	if err != nil {
		return nil, err
	}

	var peerPub [32]byte
	if initiator {
		if err := writeDHLine(rw.Writer, pub); err != nil {
			return nil, err
		}
		peerPub, err = readDHLine(rw.Reader)
		if err != nil {
			return nil, err
		}
	} else {
		peerPub, err = readDHLine(rw.Reader)
		if err != nil {
			return nil, err
		}
		if err := writeDHLine(rw.Writer, pub); err != nil {
			return nil, err
		}
	}

	return deriveMatchSecret(priv, peerPub)
}
