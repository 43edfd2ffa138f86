package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"parts-matching-client/internal/api/dto"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestParseFrame(t *testing.T) {
	cases := []struct {
		in   string
		name string
		data string
		ok   bool
	}{
		{`{"event":"notification","data":{"id":1}}`, "notification", `{"id":1}`, true},
		{`{"type":"ping"}`, "ping", "", true},
		{`{"type":"order","payload":[1,2]}`, "order", `[1,2]`, true},
		{`["notification",{"id":"2"}]`, "notification", `{"id":"2"}`, true},
		{`[]`, "", "", false},
		{`{"data":{}}`, "", "", false},
		{`"hello"`, "", "", false},
		{`not json`, "", "", false},
	}
	for _, c := range cases {
		ev, ok := ParseFrame([]byte(c.in))
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.name, ev.Name, c.in)
		assert.Equal(t, c.data, string(ev.Data), c.in)
	}
}

func TestNewRejectsHTTPURL(t *testing.T) {
	_, err := New(Config{URL: "http://localhost/ws"}, nil)
	require.Error(t, err)
}

func TestRunDeliversNotifications(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var (
		mu       sync.Mutex
		gotToken string
		gotAuth  string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotToken = r.URL.Query().Get("token")
		gotAuth = r.Header.Get("Authorization")
		mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"heartbeat"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"notification","data":{"id":5,"event_type":"ORDER_MATCHED"}}`))

		// Hold the connection until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c, err := New(Config{URL: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"}, staticToken("tok"))
	require.NoError(t, err)

	got := make(chan dto.NotificationDto, 1)
	c.OnNotification(func(n dto.NotificationDto) { got <- n })

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- c.Run(ctx) }()

	select {
	case n := <-got:
		assert.Equal(t, dto.ID("5"), n.ID)
		assert.Equal(t, "ORDER_MATCHED", n.EventType)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification delivered")
	}

	cancel()
	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestRunReconnectsAfterServerClose(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var (
		mu    sync.Mutex
		dials int
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		mu.Lock()
		dials++
		n := dials
		mu.Unlock()

		if n == 1 {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`["notification",{"id":"second"}]`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c, err := New(Config{
		URL:        "ws" + strings.TrimPrefix(srv.URL, "http"),
		MinBackoff: 10 * time.Millisecond,
		MaxBackoff: 20 * time.Millisecond,
	}, nil)
	require.NoError(t, err)

	got := make(chan string, 1)
	c.On(EventNotification, func(ev Event) { got <- string(ev.Data) })

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = c.Run(ctx)
	}()

	select {
	case data := <-got:
		assert.JSONEq(t, `{"id":"second"}`, data)
	case <-time.After(5 * time.Second):
		t.Fatal("no event after reconnect")
	}

	cancel()
	<-runDone
}
