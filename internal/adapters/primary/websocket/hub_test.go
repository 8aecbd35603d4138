package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tiny-panda1966/supportdesk/internal/config"
	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
	"github.com/tiny-panda1966/supportdesk/internal/core/mocks"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/services"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
)

type hubFixture struct {
	hub    *Hub
	server *httptest.Server
	url    string
	cancel context.CancelFunc
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Host: config.HostConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			WriteWait:       time.Second,
			PongWait:        5 * time.Second,
			PingInterval:    4 * time.Second,
			MaxMessageSize:  1 << 16,
			SendBuffer:      16,
		},
		App: config.AppConfig{Environment: "development"},
	}
}

func newHubFixture(t *testing.T) *hubFixture {
	t.Helper()
	logger := testLogger()

	presenter := mocks.NewMockPresenter()
	presenter.On("Render", mock.Anything, mock.Anything).Maybe()
	presenter.On("Notice", mock.Anything, mock.Anything).Maybe()
	presenter.On("Attention", mock.Anything, mock.Anything).Maybe()

	hub := NewHub(nil, logger)
	svc := services.NewWidgetService(session.New("s-1", ""), hub, presenter, services.DefaultOptions(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.Run(ctx, svc) }()

	server := httptest.NewServer(NewHandler(hub, testConfig(), logger))
	f := &hubFixture{
		hub:    hub,
		server: server,
		url:    "ws" + strings.TrimPrefix(server.URL, "http"),
		cancel: cancel,
	}
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return f
}

func (f *hubFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (f *hubFixture) view(t *testing.T) session.View {
	t.Helper()
	var v session.View
	err := f.hub.Submit(context.Background(), func(ctx context.Context, svc ports.WidgetService) error {
		v = svc.View()
		return nil
	})
	require.NoError(t, err)
	return v
}

func readEnvelope(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func send(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func TestHub_RoundTrip(t *testing.T) {
	f := newHubFixture(t)
	conn := f.dial(t)

	// ready comes before anything else
	assert.Equal(t, "ready", readEnvelope(t, conn)["action"])
	require.NoError(t, f.hub.Ping(context.Background()))

	send(t, conn, `not json at all`)
	send(t, conn, `{"action":"somethingNew"}`)
	send(t, conn, `{"action":"setUser","user":{"email":"amy@shop.com","name":"Amy"},"isAdmin":false,"hasProfile":true}`)
	send(t, conn, `{"action":"setTickets","tickets":[{"_id":"1","ticketNumber":"T-1","subject":"Checkout broken","status":"open"},{"_id":"2","ticketNumber":"T-2","subject":"Logo","status":"open"}],"users":[],"companies":[]}`)

	require.Eventually(t, func() bool {
		return len(f.view(t).Rows) == 2
	}, 2*time.Second, 10*time.Millisecond)

	v := f.view(t)
	assert.False(t, v.Loading)
	assert.Equal(t, "amy@shop.com", v.User.Email)

	// a user action travels through the hub to the host
	err := f.hub.Submit(context.Background(), func(ctx context.Context, svc ports.WidgetService) error {
		return svc.Pacman(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, "pacman", readEnvelope(t, conn)["action"])

	// a staff reply on an unselected ticket raises the badge and tells the host
	send(t, conn, `{"action":"realtimeNoteAdded","ticketId":"2","note":{"id":"n1","author":"Support Team","content":"On it"}}`)
	env := readEnvelope(t, conn)
	assert.Equal(t, "notificationReceived", env["action"])
	assert.Equal(t, "2", env["ticketId"])
	assert.Equal(t, float64(1), env["totalCount"])
	assert.Equal(t, 1, f.view(t).Badge)
}

func TestHub_SecondHostRejected(t *testing.T) {
	f := newHubFixture(t)
	conn := f.dial(t)
	require.Equal(t, "ready", readEnvelope(t, conn)["action"])

	_, resp, err := websocket.DefaultDialer.Dial(f.url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHub_DetachOnClose(t *testing.T) {
	f := newHubFixture(t)
	conn := f.dial(t)
	require.Equal(t, "ready", readEnvelope(t, conn)["action"])

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return !f.hub.Attached()
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, f.hub.Ping(context.Background()), apperrors.ErrHostNotConnected)

	// without a host, actions that talk to it fail
	err := f.hub.Submit(context.Background(), func(ctx context.Context, svc ports.WidgetService) error {
		return svc.Reconcile(ctx, &domain.SetUser{User: domain.Identity{Email: "a@b.c"}})
	})
	require.NoError(t, err)
	err = f.hub.Submit(context.Background(), func(ctx context.Context, svc ports.WidgetService) error {
		return svc.Pacman(ctx)
	})
	assert.ErrorIs(t, err, apperrors.ErrHostNotConnected)

	// a new host can take its place
	next := f.dial(t)
	assert.Equal(t, "ready", readEnvelope(t, next)["action"])
}

func TestHub_SubmitAfterStop(t *testing.T) {
	f := newHubFixture(t)
	f.cancel()

	require.Eventually(t, func() bool {
		err := f.hub.Submit(context.Background(), func(ctx context.Context, svc ports.WidgetService) error {
			return nil
		})
		return err == apperrors.ErrGatewayStopped
	}, 2*time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, f.hub.Ping(context.Background()), apperrors.ErrGatewayStopped)
}

func TestHub_SubmitRecoversPanics(t *testing.T) {
	f := newHubFixture(t)

	err := f.hub.Submit(context.Background(), func(ctx context.Context, svc ports.WidgetService) error {
		panic("boom")
	})
	assert.ErrorIs(t, err, apperrors.ErrInternal)

	// the loop keeps serving
	assert.NotNil(t, f.view(t))
}

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"shop.example.com", "*.wixsite.com"}

	tests := []struct {
		host string
		want bool
	}{
		{"shop.example.com", true},
		{"evil.example.com", false},
		{"wixsite.com", true},
		{"amy.wixsite.com", true},
		{"amywixsite.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, originAllowed(tt.host, allowed))
		})
	}
}
