// Package auditlog implements the append-only per-match receipt log
// (spec.md §4.5's "Persistence / audit"), grounded on
// original_source/host/src/proofs.rs's persist_receipt_and_commit.
package auditlog

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nautica/battleship-zk/internal/model"
)

// Record is one line of a match's audit log: the envelope sequence
// number the ShotResult arrived on, the receipt's base64-encoded bytes,
// and the verified RoundCommit.
type Record struct {
	Seq        uint64            `json:"seq"`
	ReceiptB64 string            `json:"receipt_b64"`
	Commit     model.RoundCommit `json:"commit"`
}

// Logger appends Records to receipts/<match_id>.log, opening the file in
// append mode on every write per spec.md §5's "no in-memory shared
// state".
type Logger struct {
	dir string
}

// New returns a Logger writing under dir (typically "receipts").
func New(dir string) *Logger {
	return &Logger{dir: dir}
}

func (l *Logger) path(matchID uuid.UUID) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s.log", matchID))
}

// Append writes one Record for matchID. Per spec.md §4.5, failure to
// persist is non-fatal to the session; callers should log the error and
// continue rather than propagate it into the protocol state machine.
func (l *Logger) Append(matchID uuid.UUID, seq uint64, receiptBytes []byte, commit model.RoundCommit) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("auditlog: creating directory: %w", err)
	}

	f, err := os.OpenFile(l.path(matchID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("auditlog: opening log: %w", err)
	}
	defer f.Close()

	rec := Record{
		Seq:        seq,
		ReceiptB64: base64.StdEncoding.EncodeToString(receiptBytes),
		Commit:     commit,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("auditlog: encoding record: %w", err)
	}
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("auditlog: writing record: %w", err)
	}
	return nil
}
