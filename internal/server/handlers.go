package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nautica/battleship-zk/internal/controller"
	"github.com/nautica/battleship-zk/internal/dto"
)

// EchoHandler has the handlers for the lobby's echo.Server.
type EchoHandler struct{ ctrl *controller.AppController }

// NewEchoHandler creates a handler bound to ctrl.
func NewEchoHandler(c *controller.AppController) *EchoHandler {
	return &EchoHandler{ctrl: c}
}

// Login handles the user login request.
// POST /login
func (h *EchoHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	resp, err := h.ctrl.Login(c.Request().Context(), req.Username, "web", req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

// ListMatches retrieves every match currently awaiting a guest.
// GET /matches
func (h *EchoHandler) ListMatches(c echo.Context) error {
	matches, err := h.ctrl.ListMatchesAction(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, matches)
}

// HostMatch allows a player to host a new match.
// POST /matches
func (h *EchoHandler) HostMatch(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)

	matchID, err := h.ctrl.HostMatchAction(c.Request().Context(), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"match_id": matchID})
}

// JoinMatch allows a player to join an existing match.
// POST /matches/:id/join
func (h *EchoHandler) JoinMatch(c echo.Context) error {
	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	view, err := h.ctrl.JoinMatchAction(c.Request().Context(), matchID, playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// GetState retrieves the current state of a match.
// GET /matches/:id
func (h *EchoHandler) GetState(c echo.Context) error {
	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	view, err := h.ctrl.GetStateAction(c.Request().Context(), matchID, playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// PlaceShip allows a player to place a ship during setup.
// POST /matches/:id/place
func (h *EchoHandler) PlaceShip(c echo.Context) error {
	var req dto.PlaceShipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)
	req.PlayerID = playerID

	view, err := h.ctrl.PlaceShipAction(c.Request().Context(), matchID, playerID, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// Attack allows a player to attack the opponent's board.
// POST /matches/:id/attack
func (h *EchoHandler) Attack(c echo.Context) error {
	var req struct {
		X uint32 `json:"x"`
		Y uint32 `json:"y"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	matchID := c.Param("id")
	playerID, _ := c.Get("player_id").(string)

	view, err := h.ctrl.AttackAction(c.Request().Context(), matchID, playerID, req.X, req.Y)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}
