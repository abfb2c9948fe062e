package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisado/truco-server/internal/config"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
)

// newTestServer boots a full server against miniredis and serves its mux
// over httptest. Limits are opened wide so every test connection shares
// 127.0.0.1 without tripping the rate limiter.
func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *httptest.Server) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	cfg.Game.NextHandDelay = 3600
	cfg.Security.RateLimit.MaxPerSecond = 1000
	cfg.Security.RateLimit.MaxPerMinute = 10000
	cfg.Security.MessageLimit.MaxPerSecond = 1000
	if mutate != nil {
		mutate(cfg)
	}

	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendWS(t *testing.T, conn *websocket.Conn, msg *protocol.Message) {
	t.Helper()
	data, err := codec.Encode(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func readWS(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := codec.Decode(data)
	require.NoError(t, err)
	return msg
}

// readUntil discards frames until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want protocol.MessageType) *protocol.Message {
	t.Helper()
	for i := 0; i < 20; i++ {
		msg := readWS(t, conn)
		if msg.Type == want {
			return msg
		}
	}
	t.Fatalf("never received %q", want)
	return nil
}

func wsPayload[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	p, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return p
}

func TestServer_EndToEnd_MatchAndDisconnect(t *testing.T) {
	_, ts := newTestServer(t, nil)

	conn1 := dialWS(t, ts)
	conn2 := dialWS(t, ts)

	id1 := wsPayload[protocol.ConnectedPayload](t, readUntil(t, conn1, protocol.MsgConnected)).PlayerID
	id2 := wsPayload[protocol.ConnectedPayload](t, readUntil(t, conn2, protocol.MsgConnected)).PlayerID
	require.NotEqual(t, id1, id2)

	sendWS(t, conn1, codec.MustNewMessage(protocol.MsgJoin, nil))
	readUntil(t, conn1, protocol.MsgWaitingForOpponent)

	sendWS(t, conn2, codec.MustNewMessage(protocol.MsgJoin, nil))

	deal1 := wsPayload[protocol.HandDealtPayload](t, readUntil(t, conn1, protocol.MsgHandDealt))
	deal2 := wsPayload[protocol.HandDealtPayload](t, readUntil(t, conn2, protocol.MsgHandDealt))
	assert.Len(t, deal1.Cards, 3)
	assert.Len(t, deal2.Cards, 3)
	require.Equal(t, deal1.FirstToAct, deal2.FirstToAct)

	// Whoever leads plays their first card; both sides see it land.
	leader, follower := conn1, conn2
	lead := deal1
	if deal1.FirstToAct == id2 {
		leader, follower = conn2, conn1
		lead = deal2
	}
	sendWS(t, leader, codec.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{Card: lead.Cards[0]}))

	played := wsPayload[protocol.CardPlayedPayload](t, readUntil(t, follower, protocol.MsgCardPlayed))
	assert.Equal(t, lead.FirstToAct, played.PlayerID)
	assert.Equal(t, lead.Cards[0], played.Card)
	readUntil(t, leader, protocol.MsgCardPlayed)

	turn := wsPayload[protocol.ChangeTurnPayload](t, readUntil(t, follower, protocol.MsgChangeTurn))
	assert.NotEqual(t, lead.FirstToAct, turn.CurrentPlayer)

	// Dropping the leader's socket tears the room down for the follower.
	leader.Close()
	readUntil(t, follower, protocol.MsgOpponentLeft)
}

func TestServer_ConnectionCap(t *testing.T) {
	_, ts := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxConnections = 1
	})

	conn := dialWS(t, ts)
	readUntil(t, conn, protocol.MsgConnected)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_OriginRejected(t *testing.T) {
	_, ts := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.AllowedOrigins = []string{"http://good.example"}
	})

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// An allowed origin upgrades fine.
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), http.Header{"Origin": []string{"http://good.example"}})
	require.NoError(t, err)
	defer conn.Close()
	readUntil(t, conn, protocol.MsgConnected)
}

func TestServer_ConnectionRateLimited(t *testing.T) {
	_, ts := newTestServer(t, func(cfg *config.Config) {
		cfg.Security.RateLimit.MaxPerMinute = 1
	})

	conn := dialWS(t, ts)
	readUntil(t, conn, protocol.MsgConnected)
	conn.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_OnlineCountTracksConnections(t *testing.T) {
	s, ts := newTestServer(t, nil)

	conn1 := dialWS(t, ts)
	conn2 := dialWS(t, ts)
	readUntil(t, conn1, protocol.MsgConnected)
	readUntil(t, conn2, protocol.MsgConnected)

	require.Eventually(t, func() bool { return s.GetOnlineCount() == 2 }, time.Second, 10*time.Millisecond)

	conn1.Close()
	require.Eventually(t, func() bool { return s.GetOnlineCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestServer_ShutdownStopsMonitor(t *testing.T) {
	s, _ := newTestServer(t, nil)

	stopped := make(chan struct{})
	go func() {
		s.monitorStats()
		close(stopped)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("monitor goroutine kept running after shutdown")
	}
}

func TestClient_SendMessageDuringClose(t *testing.T) {
	t.Parallel()

	client := &Client{
		ID:   "c1",
		send: make(chan []byte, 4),
	}
	msg := codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.SendMessage(msg)
		}()
	}
	client.Close()
	wg.Wait()

	assert.True(t, client.closed)
}
