package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/client"
	"github.com/nautica/battleship-zk/internal/dto"
)

func TestLogin_StoresToken(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(dto.AuthResponse{Token: "tok-123", User: dto.User{ID: "u1", Username: "alice"}})
	}))
	defer ts.Close()

	c := client.New(ts.URL)
	resp, err := c.Login("alice")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "tok-123", c.Token)
}

func TestDo_PropagatesAuthHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]dto.MatchSummary{})
	}))
	defer ts.Close()

	c := client.New(ts.URL)
	c.Token = "abc"
	_, err := c.ListMatches()
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestDo_ReturnsErrorOnNon2xx(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := client.New(ts.URL)
	_, err := c.CreateMatch()
	assert.Error(t, err)
}

func TestAttack_SendsCoordinates(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]uint32
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, uint32(3), body["x"])
		assert.Equal(t, uint32(4), body["y"])
		_ = json.NewEncoder(w).Encode(dto.MatchView{})
	}))
	defer ts.Close()

	c := client.New(ts.URL)
	_, err := c.Attack("match-1", 3, 4)
	require.NoError(t, err)
}
