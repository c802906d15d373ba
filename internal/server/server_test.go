package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/dto"
)

type testClient struct {
	t       *testing.T
	baseURL string
	client  *http.Client
	token   string
}

func (c *testClient) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reqBody = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, respBody
}

func (c *testClient) login(username string) dto.User {
	code, body := c.do(http.MethodPost, "/login", map[string]string{"username": username})
	require.Equal(c.t, http.StatusOK, code)

	var resp dto.AuthResponse
	require.NoError(c.t, json.Unmarshal(body, &resp))
	c.token = resp.Token
	return resp.User
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("RATE_LIMIT", "1000")

	app := &Application{}
	require.NoError(t, app.Setup())
	ts := httptest.NewServer(app.E)
	t.Cleanup(ts.Close)
	return ts
}

func TestApplication_LoginIssuesToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := &testClient{t: t, baseURL: ts.URL, client: ts.Client()}
	user := c.login("alice")
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, c.token)
}

func TestApplication_HostRequiresAuth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := &testClient{t: t, baseURL: ts.URL, client: ts.Client()}
	code, _ := c.do(http.MethodPost, "/matches", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestApplication_FullLobbyFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	alice := &testClient{t: t, baseURL: ts.URL, client: ts.Client()}
	aliceUser := alice.login("alice")

	bob := &testClient{t: t, baseURL: ts.URL, client: ts.Client()}
	bob.login("bob")

	code, body := alice.do(http.MethodPost, "/matches", nil)
	require.Equal(t, http.StatusOK, code)
	var hostResp map[string]string
	require.NoError(t, json.Unmarshal(body, &hostResp))
	matchID := hostResp["match_id"]
	require.NotEmpty(t, matchID)

	code, _ = bob.do(http.MethodPost, "/matches/"+matchID+"/join", nil)
	require.Equal(t, http.StatusOK, code)

	fleet := []dto.PlaceShipRequest{
		{ShipName: "Carrier", X: 0, Y: 0, Orientation: "horizontal"},
		{ShipName: "Battleship", X: 0, Y: 1, Orientation: "horizontal"},
		{ShipName: "Cruiser", X: 0, Y: 2, Orientation: "horizontal"},
		{ShipName: "Submarine", X: 0, Y: 3, Orientation: "horizontal"},
		{ShipName: "Destroyer", X: 0, Y: 4, Orientation: "horizontal"},
	}
	for _, req := range fleet {
		code, _ = alice.do(http.MethodPost, "/matches/"+matchID+"/place", req)
		require.Equal(t, http.StatusOK, code)
		code, _ = bob.do(http.MethodPost, "/matches/"+matchID+"/place", req)
		require.Equal(t, http.StatusOK, code)
	}

	code, body = alice.do(http.MethodGet, "/matches/"+matchID, nil)
	require.Equal(t, http.StatusOK, code)
	var view dto.MatchView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, dto.PhasePlaying, view.Phase)
	assert.Equal(t, aliceUser.ID, view.Turn)

	code, body = alice.do(http.MethodPost, "/matches/"+matchID+"/attack", map[string]uint32{"x": 9, "y": 9})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, dto.PhasePlaying, view.Phase, "a miss at an empty cell should not end the match")
}
