// Package guest is the pure, deterministic function that the zero-
// knowledge prover executes: given an initial board and an ordered shot
// sequence, it emits a journal binding the initial commitment and one
// RoundCommit per shot. It stands in for the compiled guest program
// (methods/guest/src/main.rs in the original RISC Zero implementation);
// the real system's guest runs inside a zkVM and this function is its
// host-language-equivalent control flow, called directly by
// internal/proof in place of an actual zkVM execution.
package guest

import (
	"errors"

	"github.com/nautica/battleship-zk/internal/model"
)

// ErrNotWellFormed is returned when the initial board fails validation;
// the guest aborts and produces no journal at all, matching the original
// guest's panic!("initial GameState failed validation").
var ErrNotWellFormed = errors.New("guest: initial game state is not well-formed")

// Journal is the guest's append-only public output: the digest of the
// initial state, followed by one RoundCommit per shot, in order. Each
// item is independently decodable by a streaming verifier (spec.md §4.2).
type Journal struct {
	Initial model.Digest
	Commits []model.RoundCommit
}

// Run executes the guest program over initial and shots, returning the
// resulting journal. The guest never mutates the caller's initial value;
// it works on a clone.
//
// Preconditions enforced inside the guest, per spec.md §4.2:
//   - initial.WellFormed() must hold, or the guest aborts with
//     ErrNotWellFormed and produces no journal.
//   - For each shot, old = state.Commit() is taken before mutation. If the
//     shot is out of bounds or already shot, the guest records a Miss with
//     new_state == old_state and does not mutate state — this keeps the
//     journal decidable even for malformed requests; internal/coordinator
//     is responsible for rejecting repeats at the session level if it
//     wants to (spec.md §4.2).
func Run(initial *model.GameState, shots []model.Position) (Journal, error) {
	if !initial.WellFormed() {
		return Journal{}, ErrNotWellFormed
	}

	state := initial.Clone()
	journal := Journal{Initial: state.Commit()}

	for _, shot := range shots {
		old := state.Commit()

		hit, ok := state.ApplyShot(shot)
		if !ok {
			hit = model.MissResult()
		}

		journal.Commits = append(journal.Commits, model.RoundCommit{
			OldState: old,
			NewState: state.Commit(),
			Shot:     shot,
			Hit:      hit,
		})
	}

	return journal, nil
}
