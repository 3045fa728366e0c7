package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/protocol"
)

// recordingActor calls every bet and remembers what it saw.
type recordingActor struct {
	mu       sync.Mutex
	requests []game.BetRequest
	events   []game.Event
}

func (a *recordingActor) PlaceBet(_ context.Context, req game.BetRequest) (game.BetAction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)
	if req.Call == 0 {
		return game.BetAction{Type: game.Check}, nil
	}
	return game.BetAction{Type: game.Call}, nil
}

func (a *recordingActor) Update(ev game.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingActor) snapshot() ([]game.BetRequest, []game.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]game.BetRequest(nil), a.requests...), append([]game.Event(nil), a.events...)
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// scriptedServer runs one websocket session and returns the join it saw.
func scriptedServer(t *testing.T, session func(t *testing.T, ws *websocket.Conn)) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws", r.URL.Path)
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer func() { _ = ws.Close() }()
		session(t, ws)
	}))
}

func send(t *testing.T, ws *websocket.Conn, msg any) {
	t.Helper()
	data, err := protocol.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, data))
}

func TestClientPlaysScriptedHand(t *testing.T) {
	t.Parallel()

	srv := scriptedServer(t, func(t *testing.T, ws *websocket.Conn) {
		// Join comes first.
		_, data, err := ws.ReadMessage()
		require.NoError(t, err)
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		join := msg.(*protocol.Join)
		assert.Equal(t, "alice", join.Name)
		assert.Equal(t, "main", join.Table)

		// Broadcast a stage, then prompt for a bet.
		send(t, ws, &protocol.StageChange{Type: protocol.TypeStageChange, Stage: "preflop"})
		send(t, ws, &protocol.ActionRequest{
			Type:      protocol.TypeActionRequest,
			Stage:     "preflop",
			Call:      10,
			BankRoll:  990,
			HoleCards: []string{"As", "Kh"},
		})

		_, data, err = ws.ReadMessage()
		require.NoError(t, err)
		msg, err = protocol.Decode(data)
		require.NoError(t, err)
		action := msg.(*protocol.Action)
		assert.Equal(t, "call", action.Action)

		send(t, ws, &protocol.GameWinner{Type: protocol.TypeGameWinner, Name: "alice", BankRoll: 2000})
	})
	defer srv.Close()

	actor := &recordingActor{}
	c := New(srv.URL, "alice", "main", actor, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Run(ctx))

	requests, events := actor.snapshot()
	require.Len(t, requests, 1)
	assert.Equal(t, 10, requests[0].Call)
	assert.Equal(t, "As", requests[0].Hole[0].Code())

	require.Len(t, events, 2)
	assert.IsType(t, game.StageChangeEvent{}, events[0])
	winner := events[1].(game.GameWinnerEvent)
	assert.Equal(t, "alice", winner.Name)
}

func TestClientStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := scriptedServer(t, func(t *testing.T, ws *websocket.Conn) {
		_, _, err := ws.ReadMessage()
		require.NoError(t, err)
		close(started)
		// Hold the connection open; the client should leave on its own.
		_, _, _ = ws.ReadMessage()
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(srv.URL, "bob", "", &recordingActor{}, testLogger())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	<-started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop on cancel")
	}
}

func TestWebsocketURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
		ok       bool
	}{
		{"http://example.com:8080", "ws://example.com:8080/ws", true},
		{"https://example.com", "wss://example.com/ws", true},
		{"ws://example.com/ws", "ws://example.com/ws", true},
		{"ftp://example.com", "", false},
	}

	for _, tc := range cases {
		got, err := websocketURL(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}
