package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
)

// Options tunes local form validation.
type Options struct {
	MinSubjectLength     int
	MinDescriptionLength int
}

// DefaultOptions returns the widget's standard form rules.
func DefaultOptions() Options {
	return Options{
		MinSubjectLength:     5,
		MinDescriptionLength: 10,
	}
}

// WidgetService implements ports.WidgetService over a single session. It
// must only be called from the goroutine that owns the session.
type WidgetService struct {
	sess      *session.Session
	emitter   ports.Emitter
	presenter ports.Presenter
	opts      Options
	logger    *slog.Logger
}

var _ ports.WidgetService = (*WidgetService)(nil)

// NewWidgetService creates the widget core for sess.
func NewWidgetService(
	sess *session.Session,
	emitter ports.Emitter,
	presenter ports.Presenter,
	opts Options,
	logger *slog.Logger,
) *WidgetService {
	if opts.MinSubjectLength <= 0 {
		opts.MinSubjectLength = DefaultOptions().MinSubjectLength
	}
	if opts.MinDescriptionLength <= 0 {
		opts.MinDescriptionLength = DefaultOptions().MinDescriptionLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WidgetService{
		sess:      sess,
		emitter:   emitter,
		presenter: presenter,
		opts:      opts,
		logger:    logger.With("component", "widget", "session_id", sess.ID),
	}
}

// View returns the current presentation data.
func (s *WidgetService) View() session.View {
	return s.sess.View()
}

// refresh recomputes the projection and hands it to the presenter.
func (s *WidgetService) refresh(ctx context.Context) {
	s.presenter.Render(ctx, s.sess.View())
}

func (s *WidgetService) notify(ctx context.Context, kind ports.NoticeKind, message string) {
	s.presenter.Notice(ctx, ports.Notice{Message: message, Kind: kind})
}

func (s *WidgetService) emit(ctx context.Context, msg domain.Outbound) error {
	if err := s.emitter.Emit(ctx, msg); err != nil {
		return fmt.Errorf("emit %s: %w", msg.Action(), err)
	}
	return nil
}

// formatAmount prints a number the way the host displays it: no trailing
// zeros and no exponent.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
