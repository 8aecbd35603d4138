package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
)

// WidgetHandler exposes the widget's view and user actions over HTTP. Every
// call is dispatched onto the loop that owns the session.
type WidgetHandler struct {
	dispatcher   ports.Dispatcher
	notices      ports.NoticeLog
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewWidgetHandler creates a new widget handler. notices may be nil.
func NewWidgetHandler(
	dispatcher ports.Dispatcher,
	notices ports.NoticeLog,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *WidgetHandler {
	return &WidgetHandler{
		dispatcher:   dispatcher,
		notices:      notices,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "widget"),
	}
}

// RegisterRoutes sets up the routing for all widget endpoints.
func (h *WidgetHandler) RegisterRoutes(r chi.Router) {
	r.Get("/view", h.HandleGetView)
	r.Get("/notices", h.HandleListNotices)
	r.Put("/filters", h.HandleSetFilters)

	r.Post("/tickets", h.HandleCreateTicket)
	r.Route("/tickets/{ticketID}", func(r chi.Router) {
		r.Delete("/", h.HandleDeleteTicket)
		r.Post("/select", h.HandleSelectTicket)
		r.Post("/notes", h.HandleAddNote)
		r.Patch("/status", h.HandleUpdateStatus)
		r.Patch("/type", h.HandleUpdateTicketType)
		r.Patch("/project-value", h.HandleUpdateProjectValue)
	})
	r.Post("/notes", h.HandleAddNote)

	r.Post("/uploads", h.HandleRequestUpload)
	r.Delete("/uploads/pending", h.HandleRemovePendingAttachment)

	r.Post("/referrals", h.HandleAddReferral)
	r.Put("/profile", h.HandleSaveProfile)

	r.Post("/modals/{modal}", h.HandleOpenModal)
	r.Delete("/modals", h.HandleCloseModal)

	r.Post("/pacman", h.HandlePacman)
}

// --- Request DTOs ---

// UpdateStatusRequest defines the expected JSON body for status updates
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// UpdateTicketTypeRequest defines the expected JSON body for type changes
type UpdateTicketTypeRequest struct {
	TicketType domain.TicketType `json:"ticketType"`
}

// UpdateProjectValueRequest defines the expected JSON body for project
// value changes
type UpdateProjectValueRequest struct {
	Value float64 `json:"value"`
}

// OpenModalRequest carries the image URL for the image modal
type OpenModalRequest struct {
	ImageURL string `json:"imageUrl"`
}

// --- Handlers ---

// HandleGetView handles GET /view
func (h *WidgetHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.dispatch(r.Context(), nil)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// HandleListNotices handles GET /notices
func (h *WidgetHandler) HandleListNotices(w http.ResponseWriter, r *http.Request) {
	var notices []ports.Notice
	if h.notices != nil {
		notices = h.notices.RecentNotices()
	}
	WriteList(w, notices)
}

// HandleSetFilters handles PUT /filters
func (h *WidgetHandler) HandleSetFilters(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeJSON[projection.Filters](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusOK, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.SetFilters(ctx, *req)
	})
}

// HandleCreateTicket handles POST /tickets
func (h *WidgetHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeJSON[ports.CreateTicketParams](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.CreateTicket(ctx, *req)
	})
}

// HandleSelectTicket handles POST /tickets/{ticketID}/select
func (h *WidgetHandler) HandleSelectTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := ticketIDParam(r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusOK, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.SelectTicket(ctx, ticketID)
	})
}

// HandleAddNote handles POST /tickets/{ticketID}/notes and POST /notes.
// The second form replies on the selected ticket.
func (h *WidgetHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeJSON[ports.AddNoteParams](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	if id := chi.URLParam(r, "ticketID"); id != "" {
		req.TicketID = id
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.AddNote(ctx, *req)
	})
}

// HandleUpdateStatus handles PATCH /tickets/{ticketID}/status
func (h *WidgetHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ticketID, err := ticketIDParam(r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	req, err := DecodeJSON[UpdateStatusRequest](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.UpdateStatus(ctx, ticketID, req.Status)
	})
}

// HandleDeleteTicket handles DELETE /tickets/{ticketID}
func (h *WidgetHandler) HandleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := ticketIDParam(r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.DeleteTicket(ctx, ticketID)
	})
}

// HandleUpdateTicketType handles PATCH /tickets/{ticketID}/type
func (h *WidgetHandler) HandleUpdateTicketType(w http.ResponseWriter, r *http.Request) {
	ticketID, err := ticketIDParam(r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	req, err := DecodeJSON[UpdateTicketTypeRequest](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.UpdateTicketType(ctx, ticketID, req.TicketType)
	})
}

// HandleUpdateProjectValue handles PATCH /tickets/{ticketID}/project-value
func (h *WidgetHandler) HandleUpdateProjectValue(w http.ResponseWriter, r *http.Request) {
	ticketID, err := ticketIDParam(r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	req, err := DecodeJSON[UpdateProjectValueRequest](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.UpdateProjectValue(ctx, ticketID, req.Value)
	})
}

// HandleRequestUpload handles POST /uploads
func (h *WidgetHandler) HandleRequestUpload(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.RequestUpload(ctx)
	})
}

// HandleRemovePendingAttachment handles DELETE /uploads/pending
func (h *WidgetHandler) HandleRemovePendingAttachment(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.RemovePendingAttachment(ctx)
	})
}

// HandleAddReferral handles POST /referrals
func (h *WidgetHandler) HandleAddReferral(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeJSON[ports.AddReferralParams](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.AddReferral(ctx, *req)
	})
}

// HandleSaveProfile handles PUT /profile
func (h *WidgetHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeJSON[ports.SaveProfileParams](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.SaveProfile(ctx, *req)
	})
}

// HandleOpenModal handles POST /modals/{modal}
func (h *WidgetHandler) HandleOpenModal(w http.ResponseWriter, r *http.Request) {
	modal := domain.Modal(chi.URLParam(r, "modal"))
	req, err := DecodeJSON[OpenModalRequest](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.respond(w, r, http.StatusOK, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.OpenModal(ctx, modal, req.ImageURL)
	})
}

// HandleCloseModal handles DELETE /modals
func (h *WidgetHandler) HandleCloseModal(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.CloseModal(ctx)
	})
}

// HandlePacman handles POST /pacman
func (h *WidgetHandler) HandlePacman(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusAccepted, func(ctx context.Context, svc ports.WidgetService) error {
		return svc.Pacman(ctx)
	})
}

// --- Helpers ---

// respond runs action on the widget loop and writes the resulting view.
func (h *WidgetHandler) respond(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	action func(ctx context.Context, svc ports.WidgetService) error,
) {
	view, err := h.dispatch(r.Context(), action)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteJSON(w, status, view)
}

// dispatch runs action, when set, and snapshots the view in the same turn
// of the loop.
func (h *WidgetHandler) dispatch(
	ctx context.Context,
	action func(ctx context.Context, svc ports.WidgetService) error,
) (session.View, error) {
	var view session.View
	err := h.dispatcher.Submit(ctx, func(ctx context.Context, svc ports.WidgetService) error {
		if action != nil {
			if err := action(ctx, svc); err != nil {
				return err
			}
		}
		view = svc.View()
		return nil
	})
	return view, err
}
