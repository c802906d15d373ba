package session

import (
	"bufio"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunKeyExchange_DerivesMatchingSecret(t *testing.T) {
	t.Parallel()

	a, b := net.Pipe()
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })

	rwA := bufio.NewReadWriter(bufio.NewReader(a), bufio.NewWriter(a))
	rwB := bufio.NewReadWriter(bufio.NewReader(b), bufio.NewWriter(b))

	var secretA, secretB []byte
	var errA, errB error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		secretA, errA = runKeyExchange(rwA, true)
	}()
	go func() {
		defer wg.Done()
		secretB, errB = runKeyExchange(rwB, false)
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, secretA, secretB)
	assert.Len(t, secretA, 32)
}
