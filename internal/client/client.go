// Package client provides an HTTP and WebSocket client for the lobby
// server, used by the terminal client.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/events"
)

// Client is a thin wrapper over the lobby's HTTP + WebSocket surface.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a Client pointed at baseURL with a 5s request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) do(method, path string, body, dest any) error {
	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("lobby API error: %d", resp.StatusCode)
	}

	if dest != nil {
		return json.NewDecoder(resp.Body).Decode(dest)
	}
	return nil
}

// --- Auth ---

// Login authenticates as username and stores the returned token for
// subsequent requests.
func (c *Client) Login(username string) (*dto.AuthResponse, error) {
	req := map[string]string{"username": username}
	var res dto.AuthResponse
	err := c.do(http.MethodPost, "/login", req, &res)
	if err == nil {
		c.Token = res.Token
	}
	return &res, err
}

// --- Lobby ---

// ListMatches returns every match currently awaiting a guest.
func (c *Client) ListMatches() ([]dto.MatchSummary, error) {
	var matches []dto.MatchSummary
	err := c.do(http.MethodGet, "/matches", nil, &matches)
	return matches, err
}

// CreateMatch hosts a new match and returns its ID.
func (c *Client) CreateMatch() (string, error) {
	var res struct {
		MatchID string `json:"match_id"`
	}
	err := c.do(http.MethodPost, "/matches", nil, &res)
	return res.MatchID, err
}

// JoinMatch joins an existing match as its guest.
func (c *Client) JoinMatch(matchID string) (*dto.MatchView, error) {
	var view dto.MatchView
	err := c.do(http.MethodPost, fmt.Sprintf("/matches/%s/join", matchID), nil, &view)
	return &view, err
}

// --- Game ---

// GetMatchState fetches the current view of matchID.
func (c *Client) GetMatchState(matchID string) (*dto.MatchView, error) {
	var view dto.MatchView
	err := c.do(http.MethodGet, fmt.Sprintf("/matches/%s", matchID), nil, &view)
	return &view, err
}

// PlaceShip places one ship during setup.
func (c *Client) PlaceShip(matchID string, req dto.PlaceShipRequest) (*dto.MatchView, error) {
	var view dto.MatchView
	err := c.do(http.MethodPost, fmt.Sprintf("/matches/%s/place", matchID), req, &view)
	return &view, err
}

// Attack fires at (x, y).
func (c *Client) Attack(matchID string, x, y uint32) (*dto.MatchView, error) {
	var view dto.MatchView
	req := map[string]uint32{"x": x, "y": y}
	err := c.do(http.MethodPost, fmt.Sprintf("/matches/%s/attack", matchID), req, &view)
	return &view, err
}

// SubscribeToMatch connects to the spectator WebSocket route and returns
// a channel of decoded events.GameEvents; the channel closes when the
// connection ends.
func (c *Client) SubscribeToMatch(matchID string) (<-chan *events.GameEvent, error) {
	scheme := "ws"
	if strings.HasPrefix(c.BaseURL, "https") {
		scheme = "wss"
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Scheme = scheme
	u.Path = fmt.Sprintf("/matches/%s/ws", matchID)

	header := http.Header{}
	if c.Token != "" {
		header.Set("Authorization", "Bearer "+c.Token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		return nil, err
	}

	out := make(chan *events.GameEvent, 8)
	go func() {
		defer conn.Close()
		defer close(out)
		for {
			var evt events.GameEvent
			if err := conn.ReadJSON(&evt); err != nil {
				return
			}
			select {
			case out <- &evt:
			default:
			}
		}
	}()

	return out, nil
}
