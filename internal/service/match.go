// Package service implements the HTTP lobby's concrete collaborators:
// identity (JWT issuance), match hosting/joining, and the authoritative
// setup/attack actions, adapted from the teacher's in-memory services to
// run every shot through internal/proof's commit-and-verify path instead
// of trusting a shared in-memory model.Game directly.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nautica/battleship-zk/internal/auditlog"
	"github.com/nautica/battleship-zk/internal/controller"
	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/events"
	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/proof"
)

const maxMatchesPerHost = 5

// eventPublisher is the one method MatchService needs from an event sink;
// both events.Bus and controller.NotificationService satisfy it, so the
// lobby server can wire the same notifier it hands to spectators as the
// match service's publish target without a second bus instance.
type eventPublisher interface {
	Publish(e *events.GameEvent)
}

var (
	_ controller.LobbyService = (*MatchService)(nil)
	_ controller.GameService  = (*MatchService)(nil)
)

// ErrMatchNotFound is returned when a requested match does not exist.
var ErrMatchNotFound = errors.New("match not found")

// ErrMatchFull is returned when a second guest tries to join a match that
// already has one.
var ErrMatchFull = errors.New("match already has a guest")

// ErrNotYourTurn is returned when a player attacks out of turn.
var ErrNotYourTurn = errors.New("not this player's turn")

// ErrMatchLimitReached is returned when a host already has too many
// active matches.
var ErrMatchLimitReached = errors.New("max active matches limit reached")

// MatchService is an in-memory implementation of the lobby and gameplay
// services. Unlike the teacher's model.Game, every attack is routed
// through internal/proof's Prove/VerifyAsDefender pair so the server's
// authoritative state transition is itself a verified proof step, and
// every verified round is appended to internal/auditlog.
type MatchService struct {
	bus     eventPublisher
	audit   *auditlog.Logger
	matches map[string]*safeMatch
	mu      sync.RWMutex
}

type safeMatch struct {
	id    string
	host  string
	guest string

	hostState  *model.GameState
	guestState *model.GameState

	turn   string // playerID of whoever moves next, "" during setup
	phase  dto.MatchPhase
	winner string

	sunkByHost  map[model.ShipType]bool // ships the host has sunk (belong to guest)
	sunkByGuest map[model.ShipType]bool // ships the guest has sunk (belong to host)

	createdAt time.Time
	updatedAt time.Time
	mu        sync.Mutex
}

// NewMatchService creates a match service publishing to bus (nil is
// valid — events are then simply dropped) and persisting verified
// receipts under audit (nil is valid too — receipts are then not
// persisted).
func NewMatchService(bus eventPublisher, audit *auditlog.Logger) *MatchService {
	s := &MatchService{
		bus:     bus,
		audit:   audit,
		matches: make(map[string]*safeMatch),
	}
	go s.cleanupLoop()
	return s
}

func (s *MatchService) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.gc()
	}
}

func (s *MatchService) gc() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, m := range s.matches {
		m.mu.Lock()
		finished := m.phase == dto.PhaseFinished
		last := m.updatedAt
		m.mu.Unlock()

		if finished && now.Sub(last) > 10*time.Minute {
			delete(s.matches, id)
		} else if !finished && now.Sub(last) > 24*time.Hour {
			delete(s.matches, id)
		}
	}
}

func newPepper() ([16]byte, error) {
	var p [16]byte
	if _, err := rand.Read(p[:]); err != nil {
		return p, fmt.Errorf("generating pepper: %w", err)
	}
	return p, nil
}

// CreateMatch initializes a match in the setup phase with the host
// joined and an empty board.
func (s *MatchService) CreateMatch(_ context.Context, hostID string) (string, error) {
	if s.countActiveMatchesByHost(hostID) >= maxMatchesPerHost {
		return "", ErrMatchLimitReached
	}

	pepper, err := newPepper()
	if err != nil {
		return "", err
	}

	matchID := fmt.Sprintf("match-%s", uuid.NewString())
	m := &safeMatch{
		id:          matchID,
		host:        hostID,
		hostState:   model.NewGameState(pepper),
		phase:       dto.PhaseSetup,
		sunkByHost:  make(map[model.ShipType]bool),
		sunkByGuest: make(map[model.ShipType]bool),
		createdAt:   time.Now(),
		updatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.matches[matchID] = m
	s.mu.Unlock()

	s.publish(&events.GameEvent{Type: events.EventPeerJoined, MatchID: matchID, PlayerID: hostID, Timestamp: time.Now()})

	return matchID, nil
}

// ListMatches returns every match still waiting for a guest.
func (s *MatchService) ListMatches(_ context.Context) ([]dto.MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dto.MatchSummary
	for id, m := range s.matches {
		m.mu.Lock()
		if m.guest == "" {
			out = append(out, dto.MatchSummary{
				ID:          id,
				HostName:    m.host,
				PlayerCount: 1,
				CreatedAt:   m.createdAt,
			})
		}
		m.mu.Unlock()
	}
	return out, nil
}

// JoinMatch adds playerID as the match's guest.
func (s *MatchService) JoinMatch(_ context.Context, matchID, playerID string) (dto.MatchView, error) {
	m, err := s.get(matchID)
	if err != nil {
		return dto.MatchView{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.guest != "" {
		return dto.MatchView{}, ErrMatchFull
	}

	pepper, err := newPepper()
	if err != nil {
		return dto.MatchView{}, err
	}

	m.guest = playerID
	m.guestState = model.NewGameState(pepper)
	m.updatedAt = time.Now()

	s.publish(&events.GameEvent{Type: events.EventPeerJoined, MatchID: matchID, PlayerID: playerID, TargetID: m.host, Timestamp: time.Now()})

	return viewFor(m, playerID), nil
}

// PlaceShip places one ship on playerID's board. Once both boards are
// well-formed, the match transitions to Playing with the host moving
// first.
func (s *MatchService) PlaceShip(_ context.Context, matchID, playerID string, req dto.PlaceShipRequest) (dto.MatchView, error) {
	m, err := s.get(matchID)
	if err != nil {
		return dto.MatchView{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.stateFor(playerID)
	if err != nil {
		return dto.MatchView{}, err
	}

	pl, ok := req.ToModel()
	if !ok {
		return dto.MatchView{}, fmt.Errorf("invalid placement request")
	}
	if err := state.Place(pl.Type, pl.Origin, pl.Direction); err != nil {
		return dto.MatchView{}, err
	}
	m.updatedAt = time.Now()

	s.publish(&events.GameEvent{
		Type: events.EventBoardReady, MatchID: matchID, PlayerID: playerID, Timestamp: time.Now(),
	})

	if m.phase == dto.PhaseSetup && m.hostState != nil && m.guestState != nil &&
		m.hostState.WellFormed() && m.guestState.WellFormed() {
		m.phase = dto.PhasePlaying
		m.turn = m.host
		s.publish(&events.GameEvent{Type: events.EventTurnChanged, MatchID: matchID, PlayerID: m.turn, Timestamp: time.Now()})
	}

	return viewFor(m, playerID), nil
}

// Attack verifies and applies attackerID's shot at (x, y) against the
// opponent's authoritative board, using internal/proof exactly as the
// peer-to-peer coordinator does, so the HTTP lobby path carries the same
// verified-round guarantee as the direct TLS path.
func (s *MatchService) Attack(_ context.Context, matchID, attackerID string, x, y uint32) (dto.MatchView, error) {
	m, err := s.get(matchID)
	if err != nil {
		return dto.MatchView{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != dto.PhasePlaying {
		return dto.MatchView{}, fmt.Errorf("match is not in the playing phase")
	}
	if m.turn != attackerID {
		return dto.MatchView{}, ErrNotYourTurn
	}

	defenderID, defenderState, sunkTracker, err := m.opponentOf(attackerID)
	if err != nil {
		return dto.MatchView{}, err
	}

	pos := model.Position{X: x, Y: y}

	r, err := proof.Prove(proof.GuestInput{Initial: defenderState, Shots: []model.Position{pos}})
	if err != nil {
		return dto.MatchView{}, fmt.Errorf("prover unavailable: %w", err)
	}

	commits, err := proof.VerifyAsDefender(r, defenderState, pos)
	if err != nil {
		return dto.MatchView{}, err
	}
	rc := commits[len(commits)-1]

	if _, ok := defenderState.ApplyShot(pos); !ok {
		return dto.MatchView{}, fmt.Errorf("%w: shot rejected by authoritative state", model.ErrAlreadyShot)
	}

	if s.audit != nil {
		if pd, perr := proof.ToProofData(r); perr == nil {
			matchUUID, uerr := uuid.Parse(matchID)
			if uerr != nil {
				matchUUID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(matchID))
			}
			_ = s.audit.Append(matchUUID, 0, pd.ReceiptBytes, rc)
		}
	}

	if rc.Hit.Kind == model.ResultSunk {
		sunkTracker[rc.Hit.Ship] = true
	}

	m.updatedAt = time.Now()
	s.publish(&events.GameEvent{
		Type: events.EventShotTaken, MatchID: matchID, PlayerID: attackerID, TargetID: defenderID,
		Data:      events.ShotEventData{X: x, Y: y, Result: hitResultName(rc.Hit), Ship: sunkShipName(rc.Hit)},
		Timestamp: time.Now(),
	})

	if len(sunkTracker) == model.NumShips {
		m.phase = dto.PhaseFinished
		m.winner = attackerID
		s.publish(&events.GameEvent{Type: events.EventMatchOver, MatchID: matchID, Data: events.MatchOverEventData{Winner: attackerID}, Timestamp: time.Now()})
	} else {
		m.turn = turnAfterShot(attackerID, defenderID, rc.Hit.Kind)
		s.publish(&events.GameEvent{Type: events.EventTurnChanged, MatchID: matchID, PlayerID: m.turn, Timestamp: time.Now()})
	}

	return viewFor(m, attackerID), nil
}

// GetState returns playerID's current view of the match.
func (s *MatchService) GetState(_ context.Context, matchID, playerID string) (dto.MatchView, error) {
	m, err := s.get(matchID)
	if err != nil {
		return dto.MatchView{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return viewFor(m, playerID), nil
}

func (s *MatchService) get(matchID string) (*safeMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func (s *MatchService) countActiveMatchesByHost(hostID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.matches {
		m.mu.Lock()
		isHost := m.host == hostID
		finished := m.phase == dto.PhaseFinished
		m.mu.Unlock()
		if isHost && !finished {
			count++
		}
	}
	return count
}

func (s *MatchService) publish(e *events.GameEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// turnAfterShot applies the same shooter-side rule as internal/coordinator:
// a Hit (not Sunk) keeps the attacker's turn; Miss and Sunk pass it.
func turnAfterShot(attacker, defender string, kind model.HitKind) string {
	if kind == model.ResultHit {
		return attacker
	}
	return defender
}

func hitResultName(h model.HitType) string {
	switch h.Kind {
	case model.ResultMiss:
		return "miss"
	case model.ResultHit:
		return "hit"
	default:
		return "sunk"
	}
}

func sunkShipName(h model.HitType) string {
	if h.Kind != model.ResultSunk {
		return ""
	}
	return h.Ship.String()
}

func (m *safeMatch) stateFor(playerID string) (*model.GameState, error) {
	switch playerID {
	case m.host:
		return m.hostState, nil
	case m.guest:
		if m.guestState == nil {
			return nil, fmt.Errorf("guest has not joined yet")
		}
		return m.guestState, nil
	default:
		return nil, fmt.Errorf("player %q is not part of this match", playerID)
	}
}

func (m *safeMatch) opponentOf(playerID string) (opponentID string, opponentState *model.GameState, sunkTracker map[model.ShipType]bool, err error) {
	switch playerID {
	case m.host:
		return m.guest, m.guestState, m.sunkByHost, nil
	case m.guest:
		return m.host, m.hostState, m.sunkByGuest, nil
	default:
		return "", nil, nil, fmt.Errorf("player %q is not part of this match", playerID)
	}
}

func viewFor(m *safeMatch, viewerID string) dto.MatchView {
	view := dto.MatchView{
		Phase:  m.phase,
		Turn:   m.turn,
		Winner: m.winner,
	}

	hostBoard, guestBoard := dto.BoardView{}, dto.BoardView{}
	if m.hostState != nil {
		if viewerID == m.host {
			hostBoard = dto.BoardViewOwn(m.hostState)
		} else {
			hostBoard = dto.BoardViewFrom(m.hostState.Grid)
		}
	}
	if m.guestState != nil {
		if viewerID == m.guest {
			guestBoard = dto.BoardViewOwn(m.guestState)
		} else {
			guestBoard = dto.BoardViewFrom(m.guestState.Grid)
		}
	}

	view.Host = dto.PlayerView{ID: m.host, Board: hostBoard}
	view.Guest = dto.PlayerView{ID: m.guest, Board: guestBoard}
	return view
}
