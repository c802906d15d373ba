// Package coordinator implements the two-peer round protocol (spec.md
// §4.5): the AwaitingHandshake → Playing → Finished state machine, turn
// ownership, shot request / verified response, and the (deliberately
// asymmetric) turn-transfer rules. It is grounded on
// original_source/host/src/game_coordinator.rs's GameCoordinator and
// game_round.rs's per-round control flow, restructured around an
// injected Transport and ShotPicker so the loop is test-driven rather
// than stdin-driven.
package coordinator

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/nautica/battleship-zk/internal/auditlog"
	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/proof"
	"github.com/nautica/battleship-zk/internal/session"
)

// Phase is the coordinator's state machine position.
type Phase int

const (
	AwaitingHandshake Phase = iota
	Playing
	Finished
)

func (p Phase) String() string {
	switch p {
	case AwaitingHandshake:
		return "AwaitingHandshake"
	case Playing:
		return "Playing"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Turn identifies whose move it currently is.
type Turn int

const (
	TurnLocal Turn = iota
	TurnRemote
)

// Errors surfaced by the coordinator's dispatch, matching spec.md §7.
var (
	ErrProtocolViolation = errors.New("coordinator: unexpected message for current state")
	ErrProverUnavailable = errors.New("coordinator: prover unavailable")
)

// Transport is the subset of *session.Conn the coordinator depends on,
// so tests can substitute an in-memory double.
type Transport interface {
	Send(session.GameMessage) error
	Receive() (session.GameMessage, error)
}

// ShotPicker supplies the next shot when it is the local player's turn.
// view is the coordinator's accumulated knowledge of the opponent board
// (hits and misses observed so far); implementations range from a
// terminal prompt to a scripted AI.
type ShotPicker interface {
	PickShot(view *model.GameState) (model.Position, error)
}

// RetryAdvisory reports how the caller should react after a step: most
// steps need no special handling, but a ProverUnavailable reply consumes
// a sequence number without resolving the round, so spec.md §9's open
// question requires the caller be told explicitly that a retry is
// needed and that the session's sequence counters have already moved.
type RetryAdvisory struct {
	RetryNeeded bool
	Reason      string
}

// Coordinator holds one peer's view of an in-progress match.
type Coordinator struct {
	transport Transport
	picker    ShotPicker
	audit     *auditlog.Logger

	LocalState     *model.GameState
	LocalCommit    model.Digest
	PlayerName     string
	OpponentName   string
	OpponentCommit model.Digest
	OpponentView   *model.GameState
	Turn           Turn
	Phase          Phase

	sunkObserved map[model.ShipType]bool
}

// New constructs a Coordinator already past the handshake: callers run
// session.HostHandshake/ClientHandshake themselves and pass the result
// in, matching spec.md's "initial turn is determined out of band".
func New(transport Transport, picker ShotPicker, audit *auditlog.Logger, localState *model.GameState, playerName, opponentName string, opponentCommit model.Digest, startsFirst bool) *Coordinator {
	turn := TurnRemote
	if startsFirst {
		turn = TurnLocal
	}

	return &Coordinator{
		transport:      transport,
		picker:         picker,
		audit:          audit,
		LocalState:     localState,
		LocalCommit:    localState.Commit(),
		PlayerName:     playerName,
		OpponentName:   opponentName,
		OpponentCommit: opponentCommit,
		OpponentView:   model.NewGameState(localState.Pepper),
		Turn:           turn,
		Phase:          Playing,
		sunkObserved:   make(map[model.ShipType]bool),
	}
}

// Step runs exactly one iteration of the playing loop: one send/receive
// exchange from the current peer's perspective. It returns the retry
// advisory for the step just taken; the coordinator transitions to
// Finished internally when termination is reached.
func (c *Coordinator) Step() (RetryAdvisory, error) {
	if c.Phase != Playing {
		return RetryAdvisory{}, fmt.Errorf("coordinator: Step called outside Playing (phase=%s)", c.Phase)
	}

	if c.Turn == TurnLocal {
		return c.stepAsShooter()
	}
	return c.stepAsDefender()
}

func (c *Coordinator) stepAsShooter() (RetryAdvisory, error) {
	pos, err := c.picker.PickShot(c.OpponentView)
	if err != nil {
		return RetryAdvisory{}, fmt.Errorf("coordinator: picking shot: %w", err)
	}

	if err := c.transport.Send(session.TakeShotMessage(pos)); err != nil {
		return RetryAdvisory{}, err
	}

	msg, err := c.transport.Receive()
	if err != nil {
		return RetryAdvisory{}, err
	}

	switch msg.Kind {
	case session.KindError:
		log.Printf("coordinator: defender reported error: %s", msg.Message)
		return RetryAdvisory{RetryNeeded: true, Reason: msg.Message}, nil

	case session.KindShotResult:
		if msg.Position == nil || *msg.Position != pos {
			return RetryAdvisory{}, fmt.Errorf("%w: ShotResult position does not match outstanding TakeShot", ErrProtocolViolation)
		}
		if msg.Proof == nil {
			return RetryAdvisory{}, fmt.Errorf("%w: ShotResult missing proof", ErrProtocolViolation)
		}

		r, err := proof.FromProofData(*msg.Proof)
		if err != nil {
			return RetryAdvisory{}, err
		}

		rc, err := proof.VerifyAsShooter(r, c.OpponentCommit, pos)
		if err != nil {
			return RetryAdvisory{}, err
		}

		c.OpponentCommit = rc.NewState
		c.recordOpponentView(pos, rc.Hit)

		if rc.Hit.Kind == model.ResultSunk {
			c.sunkObserved[rc.Hit.Ship] = true
		}

		c.Turn = turnAfterShooterResult(rc.Hit.Kind)

		if len(c.sunkObserved) == model.NumShips {
			c.Phase = Finished
			if err := c.transport.Send(session.GameOverMessage(c.PlayerName)); err != nil {
				log.Printf("coordinator: failed to send GameOver: %v", err)
			}
		}

		return RetryAdvisory{}, nil

	default:
		return RetryAdvisory{}, fmt.Errorf("%w: unexpected message kind %s while awaiting ShotResult", ErrProtocolViolation, msg.Kind)
	}
}

func (c *Coordinator) stepAsDefender() (RetryAdvisory, error) {
	msg, err := c.transport.Receive()
	if err != nil {
		return RetryAdvisory{}, err
	}

	switch msg.Kind {
	case session.KindTakeShot:
		if msg.Position == nil {
			return RetryAdvisory{}, fmt.Errorf("%w: TakeShot missing position", ErrProtocolViolation)
		}
		pos := *msg.Position

		r, err := proof.Prove(proof.GuestInput{Initial: c.LocalState, Shots: []model.Position{pos}})
		if err != nil {
			sendErr := c.transport.Send(session.ErrorMessage(fmt.Sprintf("prover unavailable: %v", err)))
			if sendErr != nil {
				return RetryAdvisory{}, sendErr
			}
			return RetryAdvisory{RetryNeeded: true, Reason: err.Error()}, fmt.Errorf("%w: %v", ErrProverUnavailable, err)
		}

		commits, err := proof.VerifyAsDefender(r, c.LocalState, pos)
		if err != nil {
			return RetryAdvisory{}, err
		}
		rc := commits[len(commits)-1]

		if _, ok := c.LocalState.ApplyShot(pos); !ok {
			return RetryAdvisory{}, fmt.Errorf("%w: shot rejected by authoritative state", model.ErrAlreadyShot)
		}
		c.LocalCommit = c.LocalState.Commit()

		pd, err := proof.ToProofData(r)
		if err != nil {
			return RetryAdvisory{}, err
		}

		if c.audit != nil {
			if err := c.audit.Append(matchIDFromTransport(c.transport), 0, pd.ReceiptBytes, rc); err != nil {
				log.Printf("coordinator: failed to persist receipt: %v", err)
			}
		}

		if err := c.transport.Send(session.ShotResultMessage(pos, rc.Hit, pd)); err != nil {
			return RetryAdvisory{}, err
		}

		c.Turn = turnAfterDefenderReply(rc.Hit.Kind)
		return RetryAdvisory{}, nil

	case session.KindGameOver:
		c.Phase = Finished
		return RetryAdvisory{}, nil

	case session.KindError:
		log.Printf("coordinator: remote reported error: %s", msg.Message)
		return RetryAdvisory{}, nil

	case session.KindBoardReady:
		return RetryAdvisory{}, nil

	default:
		return RetryAdvisory{}, fmt.Errorf("%w: unexpected message kind %s while awaiting remote turn", ErrProtocolViolation, msg.Kind)
	}
}

func (c *Coordinator) recordOpponentView(pos model.Position, hit model.HitType) {
	if hit.Kind == model.ResultMiss {
		c.OpponentView.Grid[pos.Y][pos.X] = model.Miss
	} else {
		c.OpponentView.Grid[pos.Y][pos.X] = model.Hit
	}
}

// turnAfterShooterResult applies spec.md §4.5's shooter-side rule:
// Miss → remote, Hit → local (shoot again), Sunk → remote. The "sunk
// passes the turn" choice is deliberate and is reproduced as specified,
// not corrected to the more common "hit or sunk keeps the turn" rule.
func turnAfterShooterResult(kind model.HitKind) Turn {
	switch kind {
	case model.ResultHit:
		return TurnLocal
	default: // ResultMiss, ResultSunk
		return TurnRemote
	}
}

// turnAfterDefenderReply applies the mirrored defender-side rule:
// Miss → local, Hit → remote, Sunk → local.
func turnAfterDefenderReply(kind model.HitKind) Turn {
	switch kind {
	case model.ResultHit:
		return TurnRemote
	default: // ResultMiss, ResultSunk
		return TurnLocal
	}
}

// matchIDFromTransport extracts a *session.Conn's match id for audit
// logging when the transport is a real session; non-session transports
// (used in tests) log under the nil UUID.
func matchIDFromTransport(t Transport) uuid.UUID {
	if conn, ok := t.(*session.Conn); ok {
		return conn.MatchID()
	}
	return uuid.UUID{}
}
