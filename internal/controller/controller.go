// Package controller contains the application controller orchestrating
// the HTTP lobby's flow: authentication, match hosting/joining, and the
// proof-backed setup/attack actions, one layer above internal/service's
// concrete implementations.
package controller

import (
	"context"

	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/events"
)

// NotificationService handles event publishing and subscription for the
// HTTP surface's spectator WebSocket route.
type NotificationService interface {
	Subscribe(matchID string) (Subscription, <-chan *events.GameEvent)
	Publish(event *events.GameEvent)
}

// Subscription represents a subscription to events.
type Subscription interface {
	Unsubscribe()
}

// IdentityService handles user registration and login.
type IdentityService interface {
	// LoginOrRegister finds an existing user or creates a new one.
	// source: "web", "discord", "cli"; extID: the platform's unique ID.
	LoginOrRegister(ctx context.Context, username, source, extID string) (dto.AuthResponse, error)
}

// LobbyService handles finding and creating matches.
type LobbyService interface {
	// CreateMatch initializes a match in the setup phase with the host
	// joined.
	CreateMatch(ctx context.Context, hostID string) (string, error)
	// ListMatches returns every match currently accepting a guest.
	ListMatches(ctx context.Context) ([]dto.MatchSummary, error)
	// JoinMatch adds the guest to the match.
	JoinMatch(ctx context.Context, matchID, playerID string) (dto.MatchView, error)
}

// GameService handles the authoritative setup/attack actions for a match
// whose two boards this process holds.
type GameService interface {
	// PlaceShip places one ship on playerID's board during setup.
	PlaceShip(ctx context.Context, matchID, playerID string, req dto.PlaceShipRequest) (dto.MatchView, error)
	// Attack verifies and applies attackerID's shot against the opponent's
	// board.
	Attack(ctx context.Context, matchID, attackerID string, x, y uint32) (dto.MatchView, error)
	// GetState returns playerID's view of the match, for refreshing a
	// client.
	GetState(ctx context.Context, matchID, playerID string) (dto.MatchView, error)
}

// AppController orchestrates the application flow across the four
// services above.
type AppController struct {
	auth     IdentityService
	lobby    LobbyService
	game     GameService
	notifier NotificationService
}

// NewAppController wires everything together.
func NewAppController(a IdentityService, l LobbyService, g GameService, n NotificationService) *AppController {
	return &AppController{auth: a, lobby: l, game: g, notifier: n}
}

// Login handles user authentication and registration.
func (c *AppController) Login(ctx context.Context, username, source, platformID string) (dto.AuthResponse, error) {
	return c.auth.LoginOrRegister(ctx, username, source, platformID)
}

// HostMatchAction handles a player's request to host a new match.
func (c *AppController) HostMatchAction(ctx context.Context, playerID string) (string, error) {
	return c.lobby.CreateMatch(ctx, playerID)
}

// ListMatchesAction retrieves the list of matches currently awaiting a
// guest.
func (c *AppController) ListMatchesAction(ctx context.Context) ([]dto.MatchSummary, error) {
	return c.lobby.ListMatches(ctx)
}

// JoinMatchAction handles a player's request to join an existing match.
func (c *AppController) JoinMatchAction(ctx context.Context, matchID, playerID string) (dto.MatchView, error) {
	return c.lobby.JoinMatch(ctx, matchID, playerID)
}

// PlaceShipAction handles a ship placement request from a player.
func (c *AppController) PlaceShipAction(ctx context.Context, matchID, playerID string, req dto.PlaceShipRequest) (dto.MatchView, error) {
	return c.game.PlaceShip(ctx, matchID, playerID, req)
}

// AttackAction handles an attack request from a player.
func (c *AppController) AttackAction(ctx context.Context, matchID, playerID string, x, y uint32) (dto.MatchView, error) {
	return c.game.Attack(ctx, matchID, playerID, x, y)
}

// GetStateAction retrieves playerID's current view of the match.
func (c *AppController) GetStateAction(ctx context.Context, matchID, playerID string) (dto.MatchView, error) {
	return c.game.GetState(ctx, matchID, playerID)
}

// SubscribeToMatch lets a handler subscribe to a match's event stream.
func (c *AppController) SubscribeToMatch(matchID string) (Subscription, <-chan *events.GameEvent) {
	return c.notifier.Subscribe(matchID)
}
