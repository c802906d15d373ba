package model_test

import (
	"math/rand/v2"
	"testing"
)

func randSource(t *testing.T) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewPCG(1, 2))
}
