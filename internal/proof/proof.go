// Package proof is the proof orchestrator: it drives the guest program as
// an opaque prover, wraps its journal in a Receipt sealed against a fixed
// program identity, and verifies remote receipts from either the
// defender's or the shooter's vantage point (spec.md §4.3).
//
// The real system's prover and verifier are a zero-knowledge virtual
// machine (RISC Zero in original_source/); their cryptographic internals
// are explicitly out of scope (spec.md §1). This package treats them as
// an opaque pair: Prove produces a Receipt that is sealed (via a digest
// binding the program identity to the journal bytes) and self-verified;
// Verify* recomputes that seal and rejects any receipt whose seal does
// not match, which is the observable contract a real zkVM's
// receipt.verify(METHOD_ID) provides.
package proof

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/nautica/battleship-zk/internal/guest"
	"github.com/nautica/battleship-zk/internal/model"
)

// Errors returned by this package, matching spec.md §7's error kinds.
var (
	// ErrProverUnavailable is returned when the prover cannot run.
	ErrProverUnavailable = errors.New("proof: prover unavailable")
	// ErrProofInvalid is returned when a receipt fails cryptographic verification.
	ErrProofInvalid = errors.New("proof: cryptographic verification failed")
	// ErrProofMismatch is returned when a receipt verifies cryptographically
	// but fails one of the binding checks (wrong shot, wrong old/new state).
	ErrProofMismatch = errors.New("proof: binding check failed")
)

// ProgramIdentity is the fixed, well-known identity every receipt is
// verified against, standing in for a zkVM's METHOD_ID image hash.
var ProgramIdentity = sha256.Sum256([]byte("battleship-zk/guest/v1"))

// Receipt is the prover's artifact: the journal plus a seal binding it to
// ProgramIdentity. It is verifiable without access to the prover itself.
type Receipt struct {
	ProgramID [32]byte
	Journal   guest.Journal
	Seal      [32]byte
}

func seal(programID [32]byte, j guest.Journal) [32]byte {
	h := sha256.New()
	h.Write(programID[:])
	h.Write(j.Initial[:])
	for _, rc := range j.Commits {
		h.Write(rc.OldState[:])
		h.Write(rc.NewState[:])
		binaryAppendPosition(h, rc.Shot)
		h.Write([]byte{byte(rc.Hit.Kind), byte(rc.Hit.Ship)})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func binaryAppendPosition(h interface{ Write([]byte) (int, error) }, p model.Position) {
	var buf [8]byte
	buf[0] = byte(p.X)
	buf[1] = byte(p.X >> 8)
	buf[2] = byte(p.X >> 16)
	buf[3] = byte(p.X >> 24)
	buf[4] = byte(p.Y)
	buf[5] = byte(p.Y >> 8)
	buf[6] = byte(p.Y >> 16)
	buf[7] = byte(p.Y >> 24)
	h.Write(buf[:])
}

func (r Receipt) verify() error {
	if r.ProgramID != ProgramIdentity {
		return fmt.Errorf("%w: unexpected program identity", ErrProofInvalid)
	}
	if r.Seal != seal(r.ProgramID, r.Journal) {
		return fmt.Errorf("%w: seal does not match journal", ErrProofInvalid)
	}
	return nil
}

// GuestInput is what a caller supplies to Prove: the board the shot(s)
// are played against, plus the shots themselves.
type GuestInput struct {
	Initial *model.GameState
	Shots   []model.Position
}

// Prove runs the guest program over input, wraps the resulting journal in
// a sealed Receipt, and self-verifies before returning it. It fails with
// ErrProverUnavailable if the guest cannot run (e.g. the initial board is
// not well-formed) and with ErrProofInvalid if self-verification somehow
// fails (spec.md §4.3).
func Prove(input GuestInput) (Receipt, error) {
	journal, err := guest.Run(input.Initial, input.Shots)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrProverUnavailable, err)
	}

	r := Receipt{ProgramID: ProgramIdentity, Journal: journal}
	r.Seal = seal(r.ProgramID, r.Journal)

	if err := r.verify(); err != nil {
		return Receipt{}, err
	}

	return r, nil
}

// VerifyAsDefender is the defender-facing check (spec.md §4.3): given a
// remote receipt, the defender's own authoritative serverState, and the
// shot it expects the receipt to cover, it verifies the receipt
// cryptographically, extracts the non-empty commit list, checks the last
// commit's shot and old_state match, re-applies the shot to a clone of
// serverState, and requires the clone's digest to equal the commit's
// new_state. It returns the full commit list on success.
func VerifyAsDefender(r Receipt, serverState *model.GameState, shot model.Position) ([]model.RoundCommit, error) {
	if err := r.verify(); err != nil {
		return nil, err
	}

	commits := r.Journal.Commits
	if len(commits) == 0 {
		return nil, fmt.Errorf("%w: empty commit list", ErrProofMismatch)
	}

	rc := commits[len(commits)-1]
	if rc.Shot != shot {
		return nil, fmt.Errorf("%w: commit shot %v does not match expected %v", ErrProofMismatch, rc.Shot, shot)
	}

	expectedOld := serverState.Commit()
	if rc.OldState != expectedOld {
		return nil, fmt.Errorf("%w: commit old_state does not match server state (desync or replay)", ErrProofMismatch)
	}

	clone := serverState.Clone()
	if _, ok := clone.ApplyShot(shot); !ok {
		return nil, fmt.Errorf("%w: shot rejected by authoritative state", model.ErrAlreadyShot)
	}
	if clone.Commit() != rc.NewState {
		return nil, fmt.Errorf("%w: commit new_state inconsistent with re-applied shot", ErrProofMismatch)
	}

	return commits, nil
}

// VerifyAsShooter is the shooter-facing check (spec.md §4.5): given a
// remote receipt, the shooter's recorded opponent commitment, and the
// shot it fired, it verifies the receipt cryptographically, locates the
// commit matching shot, and requires its old_state to equal
// expectedOld. It returns the matching RoundCommit so the shooter can
// adopt new_state as the updated opponent commitment.
func VerifyAsShooter(r Receipt, expectedOld model.Digest, shot model.Position) (model.RoundCommit, error) {
	if err := r.verify(); err != nil {
		return model.RoundCommit{}, err
	}

	for _, rc := range r.Journal.Commits {
		if rc.Shot != shot {
			continue
		}
		if rc.OldState != expectedOld {
			return model.RoundCommit{}, fmt.Errorf("%w: commit old_state does not match recorded opponent commit", ErrProofMismatch)
		}
		return rc, nil
	}

	return model.RoundCommit{}, fmt.Errorf("%w: no commit found for shot %v", ErrProofMismatch, shot)
}

// ProofData is the transport form of a proof (spec.md §3): the receipt's
// bytes plus the last RoundCommit from its journal, duplicated outside
// the receipt for quick inspection without decoding it.
type ProofData struct {
	ReceiptBytes []byte
	Commit       model.RoundCommit
}

// ToProofData serializes r with encoding/gob (the receipt never leaves
// the process boundary except as these opaque bytes, so gob's
// self-describing but non-standard framing is an acceptable stand-in for
// the original's bincode encoding; see DESIGN.md) and pairs it with the
// journal's last commit.
func ToProofData(r Receipt) (ProofData, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return ProofData{}, fmt.Errorf("proof: encoding receipt: %w", err)
	}
	if len(r.Journal.Commits) == 0 {
		return ProofData{}, fmt.Errorf("proof: receipt has no commits")
	}
	last := r.Journal.Commits[len(r.Journal.Commits)-1]
	return ProofData{ReceiptBytes: buf.Bytes(), Commit: last}, nil
}

// FromProofData decodes a Receipt from pd's bytes.
func FromProofData(pd ProofData) (Receipt, error) {
	var r Receipt
	if err := gob.NewDecoder(bytes.NewReader(pd.ReceiptBytes)).Decode(&r); err != nil {
		return Receipt{}, fmt.Errorf("proof: decoding receipt: %w", err)
	}
	return r, nil
}
