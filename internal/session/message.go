package session

import (
	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/proof"
)

// MessageKind tags the variant carried by a GameMessage. The wire tag
// names match spec.md §6 exactly: BoardReady, TakeShot, ShotResult,
// GameOver, Error.
type MessageKind string

const (
	KindBoardReady MessageKind = "BoardReady"
	KindTakeShot   MessageKind = "TakeShot"
	KindShotResult MessageKind = "ShotResult"
	KindGameOver   MessageKind = "GameOver"
	KindError      MessageKind = "Error"
)

// GameMessage is the payload carried inside an Envelope. Go has no tagged
// union, so (following the flat-DTO style the rest of this module's
// stack uses for wire types) it is one struct with a Kind discriminator
// and per-variant fields left zero when unused; omitempty keeps the JSON
// compact and close to the original enum's shape.
type GameMessage struct {
	Kind MessageKind `json:"kind"`

	// BoardReady
	Commitment *model.Digest    `json:"commitment,omitempty"`
	PlayerName string           `json:"player_name,omitempty"`
	Proof      *proof.ProofData `json:"proof,omitempty"`

	// TakeShot / ShotResult
	Position *model.Position `json:"position,omitempty"`
	HitType  *model.HitType  `json:"hit_type,omitempty"`

	// GameOver
	Winner string `json:"winner,omitempty"`

	// Error
	Message string `json:"message,omitempty"`
}

// BoardReadyMessage builds the handshake message a peer sends with its
// board commitment, name, and an optional proof (nil when it has none).
func BoardReadyMessage(commitment model.Digest, playerName string, p *proof.ProofData) GameMessage {
	return GameMessage{Kind: KindBoardReady, Commitment: &commitment, PlayerName: playerName, Proof: p}
}

// TakeShotMessage builds a shot request.
func TakeShotMessage(pos model.Position) GameMessage {
	return GameMessage{Kind: KindTakeShot, Position: &pos}
}

// ShotResultMessage builds a proven shot-result reply.
func ShotResultMessage(pos model.Position, hit model.HitType, p proof.ProofData) GameMessage {
	return GameMessage{Kind: KindShotResult, Position: &pos, HitType: &hit, Proof: &p}
}

// GameOverMessage builds a terminal notification.
func GameOverMessage(winner string) GameMessage {
	return GameMessage{Kind: KindGameOver, Winner: winner}
}

// ErrorMessage builds a local-error reply that does not terminate the
// session (e.g. ProverUnavailable).
func ErrorMessage(message string) GameMessage {
	return GameMessage{Kind: KindError, Message: message}
}
