package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
)

// Digest is a SHA-256 commitment over a GameState's canonical serialization.
type Digest [sha256.Size]byte

// Encode writes the canonical, bit-exact, platform-independent byte
// representation of g: ship count, then each ship as five little-endian
// uint32 fields (type index, origin x, origin y, direction, hit mask) in
// placement order, then the 16 pepper bytes, then the 100 grid cells
// row-major as single bytes. This layout has no self-describing framing,
// as spec.md §4.1 requires, so two structurally-equal states always
// encode identically regardless of host integer width.
func (g *GameState) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(g.Ships))); err != nil {
		return err
	}
	for _, ship := range g.Ships {
		fields := [5]uint32{
			uint32(ship.Type.Index()),
			ship.Origin.X,
			ship.Origin.Y,
			uint32(ship.Direction),
			ship.Hits,
		}
		if err := binary.Write(w, binary.LittleEndian, fields); err != nil {
			return err
		}
	}
	if _, err := w.Write(g.Pepper[:]); err != nil {
		return err
	}
	for y := range BoardSize {
		for x := range BoardSize {
			if err := binary.Write(w, binary.LittleEndian, uint8(g.Grid[y][x])); err != nil {
				return err
			}
		}
	}
	return nil
}

// Bytes returns the canonical serialization as a byte slice.
func (g *GameState) Bytes() []byte {
	var buf bytes.Buffer
	// Encode over an in-memory buffer never fails.
	_ = g.Encode(&buf)
	return buf.Bytes()
}

// Commit returns the SHA-256 digest of the canonical serialization. Two
// GameStates produce equal digests iff they are structurally equal
// (spec.md §4.1); in particular the digest depends on every field,
// including Pepper.
func (g *GameState) Commit() Digest {
	return sha256.Sum256(g.Bytes())
}

// DecodeGameState reads the canonical serialization written by Encode.
func DecodeGameState(r io.Reader) (*GameState, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading ship count: %w", err)
	}

	g := &GameState{Ships: make([]Ship, 0, count)}
	for range count {
		var fields [5]uint32
		if err := binary.Read(r, binary.LittleEndian, &fields); err != nil {
			return nil, fmt.Errorf("reading ship: %w", err)
		}
		g.Ships = append(g.Ships, Ship{
			Type:      ShipType(fields[0]),
			Origin:    Position{X: fields[1], Y: fields[2]},
			Direction: Direction(fields[3]),
			Hits:      fields[4],
		})
	}

	if _, err := io.ReadFull(r, g.Pepper[:]); err != nil {
		return nil, fmt.Errorf("reading pepper: %w", err)
	}

	for y := range BoardSize {
		for x := range BoardSize {
			var cell uint8
			if err := binary.Read(r, binary.LittleEndian, &cell); err != nil {
				return nil, fmt.Errorf("reading cell (%d,%d): %w", x, y, err)
			}
			g.Grid[y][x] = CellState(cell)
		}
	}

	return g, nil
}

// DecodeGameStateBytes decodes a GameState from its canonical byte form.
func DecodeGameStateBytes(b []byte) (*GameState, error) {
	return DecodeGameState(bytes.NewReader(b))
}
