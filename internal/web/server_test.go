package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

func testCatalog(t *testing.T) *cards.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`cards:
  - id: player-ace
    name: Ace Pitcher
    cardType: Player
`), 0o644))
	cat, err := cards.Load(path)
	require.NoError(t, err)
	return cat
}

// fakeGameServer accepts a websocket, records the first request, and
// pushes one snapshot event.
func fakeGameServer(t *testing.T) (*httptest.Server, <-chan net.Request) {
	t.Helper()
	received := make(chan net.Request, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		_, data, err := conn.Read(r.Context())
		if err != nil {
			return
		}
		var req net.Request
		if json.Unmarshal(data, &req) == nil {
			received <- req
		}

		push, _ := json.Marshal(net.ServerMessage{
			Event:    net.EventGameUpdated,
			Snapshot: &game.GameSnapshot{Phase: game.PhaseMain, Turn: 3},
		})
		conn.Write(r.Context(), websocket.MessageText, push)

		// Hold the connection open until the proxy goes away.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}))
	return srv, received
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestCardsAPI(t *testing.T) {
	s := NewServer(testCatalog(t), "ws://unused", zaptest.NewLogger(t))
	web := httptest.NewServer(s.Handler())
	defer web.Close()

	resp, err := http.Get(web.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []cards.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Ace Pitcher", entries[0].Name)
}

func TestIndexServed(t *testing.T) {
	s := NewServer(nil, "ws://unused", zaptest.NewLogger(t))
	web := httptest.NewServer(s.Handler())
	defer web.Close()

	resp, err := http.Get(web.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestProxyBridgesGameServer(t *testing.T) {
	upstream, received := fakeGameServer(t)
	defer upstream.Close()

	s := NewServer(nil, wsURL(upstream), zaptest.NewLogger(t))
	web := httptest.NewServer(s.Handler())
	defer web.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	browser, _, err := websocket.Dial(ctx, wsURL(web)+"/ws", nil)
	require.NoError(t, err)
	defer browser.CloseNow()

	connect, _ := json.Marshal(map[string]string{"type": "connect", "gameId": "game-7"})
	require.NoError(t, browser.Write(ctx, websocket.MessageText, connect))

	// The proxy performs the rejoin handshake on the browser's behalf.
	select {
	case req := <-received:
		assert.Equal(t, net.ReqRejoinOrSpectate, req.Type)
		payload, ok := req.Payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "game-7", payload["gameId"])
	case <-ctx.Done():
		t.Fatal("no rejoin before timeout")
	}

	// Upstream events come through verbatim.
	_, data, err := browser.Read(ctx)
	require.NoError(t, err)
	var msg net.ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, net.EventGameUpdated, msg.Event)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, 3, msg.Snapshot.Turn)
}
