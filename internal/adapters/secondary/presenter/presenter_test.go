package presenter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/metrics"
)

func newTestPresenter(t *testing.T) (*Presenter, *metrics.Metrics, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := metrics.New(prometheus.NewRegistry())
	p := New(m, logger)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p, m, &buf
}

func TestPresenter_Render(t *testing.T) {
	p, m, _ := newTestPresenter(t)

	_, ok := p.LastView()
	assert.False(t, ok)

	p.Render(context.Background(), session.View{
		SessionID: "s-1",
		Badge:     2,
		Stats:     projection.Stats{Total: 3, Open: 1, InProgress: 1, Resolved: 1},
	})

	view, ok := p.LastView()
	require.True(t, ok)
	assert.Equal(t, "s-1", view.SessionID)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "supportdesk_widget_unread_badge 2")
	assert.Contains(t, rec.Body.String(), `supportdesk_widget_tickets{status="total"} 3`)
}

func TestPresenter_NoticeHistoryIsBounded(t *testing.T) {
	p, _, buf := newTestPresenter(t)
	p.history = 3

	for i := 0; i < 5; i++ {
		p.Notice(context.Background(), ports.Notice{Message: fmt.Sprintf("n%d", i), Kind: ports.NoticeSuccess})
	}
	p.Notice(context.Background(), ports.Notice{Message: "Upload failed", Kind: ports.NoticeError})

	notices := p.RecentNotices()
	require.Len(t, notices, 3)
	assert.Equal(t, "n3", notices[0].Message)
	assert.Equal(t, "Upload failed", notices[2].Message)
	assert.Equal(t, ports.NoticeError, notices[2].Kind)
	assert.Equal(t, 2026, notices[2].At.Year())
	assert.Contains(t, buf.String(), "level=WARN")

	notices[0].Message = "changed"
	assert.Equal(t, "n3", p.RecentNotices()[0].Message)
}

func TestPresenter_Attention(t *testing.T) {
	p, _, buf := newTestPresenter(t)

	_, ok := p.LastAttention("7")
	assert.False(t, ok)

	p.Attention(context.Background(), "7")

	at, ok := p.LastAttention("7")
	require.True(t, ok)
	assert.Equal(t, 2026, at.Year())
	assert.Contains(t, buf.String(), "ticket_id=7")
}
