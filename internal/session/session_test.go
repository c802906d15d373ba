package session_test

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/session"
)

// pipePair returns two connected net.Conn endpoints backed by net.Pipe,
// standing in for an already-TLS-established stream in tests (TLS itself
// is out of scope per spec.md §1).
func pipePair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })
	return a, b
}

func TestHandshake_EstablishesSharedMatchID(t *testing.T) {
	t.Parallel()

	host, client := pipePair(t)

	var hostConn, clientConn *session.Conn
	var hostName, clientName string
	var hostCommit, clientCommit model.Digest
	var hostErr, clientErr error

	hostDigest := model.Digest{1}
	clientDigest := model.Digest{2}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hostConn, hostName, hostCommit, _, hostErr = session.HostHandshake(host, "host", hostDigest, nil)
	}()
	go func() {
		defer wg.Done()
		clientConn, clientName, clientCommit, _, clientErr = session.ClientHandshake(client, "client", clientDigest, nil)
	}()
	wg.Wait()

	require.NoError(t, hostErr)
	require.NoError(t, clientErr)

	assert.Equal(t, "client", hostName)
	assert.Equal(t, "host", clientName)
	assert.Equal(t, clientDigest, hostCommit)
	assert.Equal(t, hostDigest, clientCommit)
	assert.Equal(t, hostConn.MatchID(), clientConn.MatchID())
}

func TestSendReceive_RoundTripsShotMessage(t *testing.T) {
	t.Parallel()

	host, client := pipePair(t)

	var hostConn, clientConn *session.Conn
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hostConn, _, _, _, _ = session.HostHandshake(host, "host", model.Digest{1}, nil)
	}()
	go func() {
		defer wg.Done()
		clientConn, _, _, _, _ = session.ClientHandshake(client, "client", model.Digest{2}, nil)
	}()
	wg.Wait()
	require.NotNil(t, hostConn)
	require.NotNil(t, clientConn)

	shot := model.Position{X: 3, Y: 4}
	done := make(chan error, 1)
	go func() { done <- hostConn.Send(session.TakeShotMessage(shot)) }()

	got, err := clientConn.Receive()
	require.NoError(t, err)
	require.NoError(t, <-done)

	assert.Equal(t, session.KindTakeShot, got.Kind)
	require.NotNil(t, got.Position)
	assert.Equal(t, shot, *got.Position)
}

func TestReceive_AcceptsConsecutiveSequenceNumbers(t *testing.T) {
	t.Parallel()

	host, client := pipePair(t)

	var hostConn, clientConn *session.Conn
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hostConn, _, _, _, _ = session.HostHandshake(host, "host", model.Digest{1}, nil)
	}()
	go func() {
		defer wg.Done()
		clientConn, _, _, _, _ = session.ClientHandshake(client, "client", model.Digest{2}, nil)
	}()
	wg.Wait()
	require.NotNil(t, hostConn)
	require.NotNil(t, clientConn)

	// Send twice, each consumed before the next: the receiver sees seq=0
	// and then seq=1, matching its expected counter both times.
	go func() { _ = hostConn.Send(session.TakeShotMessage(model.Position{X: 0, Y: 0})) }()
	_, err := clientConn.Receive()
	require.NoError(t, err)

	go func() { _ = hostConn.Send(session.TakeShotMessage(model.Position{X: 1, Y: 1})) }()
	_, err = clientConn.Receive()
	require.NoError(t, err)
}
