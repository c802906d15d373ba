package dto

import "github.com/nautica/battleship-zk/internal/model"

// MatchInfo contains the current status of a match, for the lobby list
// and match detail endpoints.
type MatchInfo struct {
	ID          string   `json:"id"`
	Phase       string   `json:"phase"`
	PlayerIDs   []string `json:"playerIds"`
	CurrentTurn string   `json:"currentTurn"`
	Winner      string   `json:"winner,omitempty"`
}

// PlaceShipRequest is the payload for placing one ship during setup.
type PlaceShipRequest struct {
	PlayerID    string `json:"playerId"`
	ShipName    string `json:"shipName"`
	X           uint32 `json:"x"`
	Y           uint32 `json:"y"`
	Orientation string `json:"orientation"` // "horizontal" | "vertical"
}

// ToModel converts the wire request into model types; it returns an error
// via the bool result rather than panicking on an unrecognized ship name
// or orientation.
func (r PlaceShipRequest) ToModel() (model.Placement, bool) {
	st, ok := shipTypeByName(r.ShipName)
	if !ok {
		return model.Placement{}, false
	}
	dir, ok := directionByName(r.Orientation)
	if !ok {
		return model.Placement{}, false
	}
	return model.Placement{
		Type:      st,
		Origin:    model.Position{X: r.X, Y: r.Y},
		Direction: dir,
	}, true
}

// FireRequest is the payload for taking a shot.
type FireRequest struct {
	AttackerID string `json:"attackerId"`
	X          uint32 `json:"x"`
	Y          uint32 `json:"y"`
}

// ToModel converts the wire request into a model.Position.
func (r FireRequest) ToModel() model.Position {
	return model.Position{X: r.X, Y: r.Y}
}

// FireResponse reports the outcome of a shot.
type FireResponse struct {
	Result string `json:"result"` // "miss" | "hit" | "sunk"
	Ship   string `json:"ship,omitempty"`
}

// HitTypeToResponse converts a verified model.HitType into a FireResponse.
func HitTypeToResponse(h model.HitType) FireResponse {
	switch h.Kind {
	case model.ResultMiss:
		return FireResponse{Result: "miss"}
	case model.ResultHit:
		return FireResponse{Result: "hit"}
	default:
		return FireResponse{Result: "sunk", Ship: h.Ship.String()}
	}
}

// Coordinate is a simple X,Y pair for DTO usage.
type Coordinate struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// ToModel converts a dto.Coordinate to a model.Position.
func (c Coordinate) ToModel() model.Position {
	return model.Position{X: c.X, Y: c.Y}
}

func shipTypeByName(name string) (model.ShipType, bool) {
	for _, st := range model.AllShipTypes() {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}

func directionByName(name string) (model.Direction, bool) {
	switch name {
	case "horizontal":
		return model.Horizontal, true
	case "vertical":
		return model.Vertical, true
	default:
		return 0, false
	}
}

// BoardViewFrom builds a spectator-safe BoardView from a grid, revealing
// only shot history — never ship placement.
func BoardViewFrom(grid [model.BoardSize][model.BoardSize]model.CellState) BoardView {
	rows := make([][]CellState, model.BoardSize)
	for y := range rows {
		row := make([]CellState, model.BoardSize)
		for x := range row {
			switch grid[y][x] {
			case model.Hit:
				row[x] = CellHit
			case model.Miss:
				row[x] = CellMiss
			default:
				row[x] = CellUnknown
			}
		}
		rows[y] = row
	}
	return BoardView{Grid: rows, Size: model.BoardSize}
}

// BoardViewOwn builds a full BoardView for the board's own owner: unlike
// BoardViewFrom it also reveals unhit ship cells, since a player is always
// allowed to see their own fleet.
func BoardViewOwn(g *model.GameState) BoardView {
	rows := make([][]CellState, model.BoardSize)
	for y := range rows {
		row := make([]CellState, model.BoardSize)
		for x := range row {
			row[x] = CellEmpty
		}
		rows[y] = row
	}

	for _, ship := range g.Ships {
		for _, seg := range ship.Segments() {
			rows[seg.Y][seg.X] = CellShip
		}
	}
	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			switch g.Grid[y][x] {
			case model.Hit:
				rows[y][x] = CellHit
			case model.Miss:
				rows[y][x] = CellMiss
			}
		}
	}

	return BoardView{Grid: rows, Size: model.BoardSize}
}
