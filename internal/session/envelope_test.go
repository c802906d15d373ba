package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/model"
)

func TestSignVerify_RoundTrips(t *testing.T) {
	t.Parallel()

	secret := []byte("a shared match secret")
	env := newEnvelope(uuid.New(), 0, TakeShotMessage(model.Position{X: 1, Y: 2}))

	signed, err := sign(env, secret)
	require.NoError(t, err)
	require.NotNil(t, signed.AuthToken)

	assert.NoError(t, verify(signed, secret))
}

func TestVerify_RejectsTamperedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("a shared match secret")
	env := newEnvelope(uuid.New(), 0, ErrorMessage("original"))

	signed, err := sign(env, secret)
	require.NoError(t, err)

	signed.Payload.Message = "tampered"
	assert.ErrorIs(t, verify(signed, secret), ErrAuthFailure)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	env := newEnvelope(uuid.New(), 0, ErrorMessage("hello"))
	signed, err := sign(env, []byte("secret-a"))
	require.NoError(t, err)

	assert.ErrorIs(t, verify(signed, []byte("secret-b")), ErrAuthFailure)
}

func TestVerify_RejectsMissingAuthToken(t *testing.T) {
	t.Parallel()

	env := newEnvelope(uuid.New(), 0, ErrorMessage("hello"))
	assert.ErrorIs(t, verify(env, []byte("secret")), ErrAuthFailure)
}
