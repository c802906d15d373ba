// Package main is the entry point for the direct peer-to-peer client:
// two instances of this binary dial/listen over TLS, run the X25519
// handshake, and then drive internal/coordinator's round protocol
// without ever going through the HTTP lobby.
package main

import (
	"bufio"
	"crypto/rand"
	"crypto/tls"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nautica/battleship-zk/internal/auditlog"
	"github.com/nautica/battleship-zk/internal/coordinator"
	"github.com/nautica/battleship-zk/internal/env"
	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/proof"
	"github.com/nautica/battleship-zk/internal/session"
)

// standardFleet places the five required ships along fixed, non-overlapping
// rows so a session can start without an interactive setup phase.
var standardFleet = []struct {
	Type   model.ShipType
	Origin model.Position
	Dir    model.Direction
}{
	{model.Carrier, model.Position{X: 0, Y: 0}, model.Horizontal},
	{model.Battleship, model.Position{X: 0, Y: 1}, model.Horizontal},
	{model.Cruiser, model.Position{X: 0, Y: 2}, model.Horizontal},
	{model.Submarine, model.Position{X: 0, Y: 3}, model.Horizontal},
	{model.Destroyer, model.Position{X: 0, Y: 4}, model.Horizontal},
}

func newPlacedState() (*model.GameState, error) {
	var pepper [16]byte
	if _, err := rand.Read(pepper[:]); err != nil {
		return nil, fmt.Errorf("generating pepper: %w", err)
	}

	state := model.NewGameState(pepper)
	for _, ship := range standardFleet {
		if err := state.Place(ship.Type, ship.Origin, ship.Dir); err != nil {
			return nil, fmt.Errorf("placing %s: %w", ship.Type, err)
		}
	}
	if !state.WellFormed() {
		return nil, fmt.Errorf("fleet placement left the board malformed")
	}
	return state, nil
}

// stdinShotPicker reads "x y" pairs from the terminal, skipping cells the
// local view already shows as shot.
type stdinShotPicker struct {
	in *bufio.Scanner
}

func (p *stdinShotPicker) PickShot(view *model.GameState) (model.Position, error) {
	for {
		fmt.Print("your shot (x y): ")
		if !p.in.Scan() {
			return model.Position{}, fmt.Errorf("peer: stdin closed")
		}
		fields := strings.Fields(p.in.Text())
		if len(fields) != 2 {
			fmt.Println("enter two numbers, e.g. \"3 4\"")
			continue
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			fmt.Println("coordinates must be integers")
			continue
		}
		pos := model.Position{X: uint32(x), Y: uint32(y)}
		if !pos.InBounds() {
			fmt.Println("coordinates out of bounds")
			continue
		}
		if view.Grid[pos.Y][pos.X] != model.Empty {
			fmt.Println("already shot there")
			continue
		}
		return pos, nil
	}
}

func main() {
	listen := flag.String("listen", "", "listen address (hosting side), e.g. :9443")
	dial := flag.String("dial", "", "address to dial (joining side), e.g. host:9443")
	name := flag.String("name", "", "player display name (defaults to BATTLE_PLAYER_NAME)")
	flag.Parse()

	if (*listen == "") == (*dial == "") {
		log.Fatal("peer: specify exactly one of -listen or -dial")
	}

	coordCfg, err := env.LoadCoordinatorConfig()
	if err != nil {
		log.Fatalf("peer: loading coordinator config: %v", err)
	}
	playerName := coordCfg.PlayerName
	if *name != "" {
		playerName = *name
	}

	sessionCfg, err := env.LoadSessionConfig()
	if err != nil {
		log.Fatalf("peer: loading session config: %v", err)
	}

	localState, err := newPlacedState()
	if err != nil {
		log.Fatalf("peer: %v", err)
	}
	commitment := localState.Commit()

	audit := auditlog.New("receipts")

	var conn *session.Conn
	var opponentName string
	var opponentCommit model.Digest
	var startsFirst bool

	if *listen != "" {
		conn, opponentName, opponentCommit, startsFirst, err = hostSession(*listen, sessionCfg, playerName, commitment)
	} else {
		conn, opponentName, opponentCommit, startsFirst, err = joinSession(*dial, sessionCfg, playerName, commitment)
	}
	if err != nil {
		log.Fatalf("peer: handshake failed: %v", err)
	}
	defer conn.Close()

	log.Printf("peer: connected to %s (match %s)", opponentName, conn.MatchID())

	picker := &stdinShotPicker{in: bufio.NewScanner(os.Stdin)}
	coord := coordinator.New(conn, picker, audit, localState, playerName, opponentName, opponentCommit, startsFirst)

	for coord.Phase != coordinator.Finished {
		advisory, err := coord.Step()
		if err != nil {
			log.Fatalf("peer: %v", err)
		}
		if advisory.RetryNeeded {
			log.Printf("peer: retry needed: %s", advisory.Reason)
		}
	}

	log.Println("peer: match finished")
}

func hostSession(addr string, cfg *env.SessionConfig, playerName string, commitment model.Digest) (*session.Conn, string, model.Digest, bool, error) {
	tlsCfg, err := session.ServerTLSConfig(cfg)
	if err != nil {
		return nil, "", model.Digest{}, false, err
	}

	ln, err := tls.Listen("tcp", addr, tlsCfg)
	if err != nil {
		return nil, "", model.Digest{}, false, fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer ln.Close()

	log.Printf("peer: listening on %s", addr)
	c, err := ln.Accept()
	if err != nil {
		return nil, "", model.Digest{}, false, err
	}

	conn, oppName, oppCommit, _, err := session.HostHandshake(c, playerName, commitment, (*proof.ProofData)(nil))
	return conn, oppName, oppCommit, true, err
}

func joinSession(addr string, cfg *env.SessionConfig, playerName string, commitment model.Digest) (*session.Conn, string, model.Digest, bool, error) {
	tlsCfg, err := session.ClientTLSConfig(cfg)
	if err != nil {
		return nil, "", model.Digest{}, false, err
	}

	c, err := tls.Dial("tcp", addr, tlsCfg)
	if err != nil {
		return nil, "", model.Digest{}, false, fmt.Errorf("dialing %s: %w", addr, err)
	}

	conn, oppName, oppCommit, _, err := session.ClientHandshake(c, playerName, commitment, (*proof.ProofData)(nil))
	return conn, oppName, oppCommit, false, err
}
