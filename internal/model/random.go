package model

import "math/rand/v2"

// PlaceShipsRandomly places all five ships using rnd as the source of
// randomness, trying shuffled (origin, direction) candidates for each
// ship in canonical order until one succeeds. If every candidate fails
// for some ship, it clears all placements made so far and reports
// failure, matching original_source/host/src/board_init.rs's
// place_ships_randomly contract (spec.md §4.1, optional randomized
// placement).
func (g *GameState) PlaceShipsRandomly(rnd *rand.Rand) bool {
	saved := g.Ships
	g.Ships = nil

	for _, st := range AllShipTypes() {
		if !g.placeOneRandomly(rnd, st) {
			g.Ships = saved
			return false
		}
	}
	return true
}

func (g *GameState) placeOneRandomly(rnd *rand.Rand, st ShipType) bool {
	type candidate struct {
		origin Position
		dir    Direction
	}

	candidates := make([]candidate, 0, 2*BoardSize*BoardSize)
	for _, dir := range []Direction{Horizontal, Vertical} {
		for y := range uint32(BoardSize) {
			for x := range uint32(BoardSize) {
				candidates = append(candidates, candidate{origin: Position{X: x, Y: y}, dir: dir})
			}
		}
	}
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, c := range candidates {
		if g.Place(st, c.origin, c.dir) == nil {
			return true
		}
	}
	return false
}
