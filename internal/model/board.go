package model

// Ship is a placed hull: its type, where it starts, which way it extends,
// and which of its segments have been hit. Hits is a bitmask, not a slice
// of booleans — spec.md requires a fixed-width integer here so the
// commitment digest stays stable regardless of segment count (SPEC_FULL.md
// §4.1). Only the low Size() bits are ever meaningful.
type Ship struct {
	Type      ShipType
	Origin    Position
	Direction Direction
	Hits      uint32
}

// Segments returns the ordered grid cells the ship occupies.
func (s Ship) Segments() []Position {
	return segments(s.Origin, s.Type.Size(), s.Direction)
}

// IsSunk reports whether every segment bit is set.
func (s Ship) IsSunk() bool {
	size := s.Type.Size()
	full := uint32(1)<<uint(size) - 1
	return s.Hits&full == full
}

func (s Ship) covers(p Position) (index int, ok bool) {
	for i, seg := range s.Segments() {
		if seg == p {
			return i, true
		}
	}
	return 0, false
}

// GameState is the full authoritative board: placed ships, a per-session
// pepper mixed into the commitment preimage, and the shot history grid.
// It is never destructured once constructed; each peer owns its own copy
// for the life of a match (SPEC_FULL.md §3).
type GameState struct {
	Ships  []Ship
	Pepper [16]byte
	Grid   [BoardSize][BoardSize]CellState
}

// NewGameState constructs an empty board carrying the given pepper.
func NewGameState(pepper [16]byte) *GameState {
	return &GameState{Pepper: pepper}
}

// Clone returns a deep copy, used by verifiers that must speculatively
// apply a shot without mutating the authoritative state.
func (g *GameState) Clone() *GameState {
	out := &GameState{Pepper: g.Pepper, Grid: g.Grid}
	out.Ships = make([]Ship, len(g.Ships))
	copy(out.Ships, g.Ships)
	return out
}

// CanPlace reports whether a ship of type st can be placed at origin
// along dir: in bounds, no ship of the same type already placed, and no
// collision with existing ships (spec.md §4.1).
func (g *GameState) CanPlace(st ShipType, origin Position, dir Direction) error {
	segs := segments(origin, st.Size(), dir)
	for _, p := range segs {
		if !p.InBounds() {
			return ErrOutOfBounds
		}
	}
	for _, existing := range g.Ships {
		if existing.Type == st {
			return ErrDuplicateShipType
		}
	}
	occupied := make(map[Position]bool)
	for _, existing := range g.Ships {
		for _, p := range existing.Segments() {
			occupied[p] = true
		}
	}
	for _, p := range segs {
		if occupied[p] {
			return ErrOverlap
		}
	}
	return nil
}

// Place appends a new ship if CanPlace holds; otherwise it returns the
// failure reason and leaves the state unmodified.
func (g *GameState) Place(st ShipType, origin Position, dir Direction) error {
	if err := g.CanPlace(st, origin, dir); err != nil {
		return err
	}
	g.Ships = append(g.Ships, Ship{Type: st, Origin: origin, Direction: dir})
	return nil
}

// Placement is one entry in a PlaceAll batch.
type Placement struct {
	Type      ShipType
	Origin    Position
	Direction Direction
}

// PlaceAll applies placements in order and is deliberately non-atomic: on
// the first failure, earlier successful placements remain and the scan
// stops. It reports whether every placement in the batch succeeded. This
// mirrors the interactive harness's need to see exactly which ship failed
// (spec.md §4.1, §9 open question).
func (g *GameState) PlaceAll(placements []Placement) bool {
	for _, pl := range placements {
		if err := g.Place(pl.Type, pl.Origin, pl.Direction); err != nil {
			return false
		}
	}
	return true
}

// WellFormed reports whether every ship lies in bounds, no two ships
// overlap, and all five ship types are present exactly once.
func (g *GameState) WellFormed() bool {
	if len(g.Ships) != NumShips {
		return false
	}
	seen := make(map[ShipType]bool, NumShips)
	occupied := make(map[Position]bool)
	for _, ship := range g.Ships {
		if seen[ship.Type] {
			return false
		}
		seen[ship.Type] = true
		for _, p := range ship.Segments() {
			if !p.InBounds() {
				return false
			}
			if occupied[p] {
				return false
			}
			occupied[p] = true
		}
	}
	for _, st := range AllShipTypes() {
		if !seen[st] {
			return false
		}
	}
	return true
}

// ApplyShot fires at pos. It reports a zero HitType and false if pos is
// out of bounds or already shot — the caller's signal to reject the shot without
// mutating state. Otherwise it marks the cell, flips at most one ship's
// hit bit, and returns the classification (spec.md §4.1).
func (g *GameState) ApplyShot(pos Position) (HitType, bool) {
	if !pos.InBounds() {
		return HitType{}, false
	}
	if g.Grid[pos.Y][pos.X] != Empty {
		return HitType{}, false
	}

	for i := range g.Ships {
		ship := &g.Ships[i]
		idx, ok := ship.covers(pos)
		if !ok {
			continue
		}
		ship.Hits |= 1 << uint(idx)
		g.Grid[pos.Y][pos.X] = Hit
		if ship.IsSunk() {
			return SunkResult(ship.Type), true
		}
		return HitResult(), true
	}

	g.Grid[pos.Y][pos.X] = Miss
	return MissResult(), true
}
