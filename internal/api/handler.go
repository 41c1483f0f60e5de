package api

import (
	"context"
	"log"

	"hostel-desk/internal/actions"
	"hostel-desk/internal/form"
	"hostel-desk/internal/notification"
	"hostel-desk/internal/store"
)

// Messages for failures the handlers report themselves.
const (
	MsgLoadFailed   = "Backend not reachable (bookings not loaded)"
	MsgSaveFailed   = "Could not save booking: backend request failed"
	MsgDeleteFailed = "Could not delete booking: backend request failed"
	MsgNotConfirmed = "Delete was not confirmed"
	MsgFormClosed   = "The booking form is closed"
	MsgBookingGone  = "Booking no longer exists"
)

// Handler holds shared dependencies for the desk's handlers.
type Handler struct {
	title   string
	state   *store.State
	form    *form.Controller
	actions *actions.Dispatcher
	notes   *notification.Surface
}

// NewHandler creates a new desk handler.
func NewHandler(title string, state *store.State, fc *form.Controller, dispatcher *actions.Dispatcher, notes *notification.Surface) *Handler {
	return &Handler{
		title:   title,
		state:   state,
		form:    fc,
		actions: dispatcher,
		notes:   notes,
	}
}

// Load fills the room cache and then the booking store, reporting failures on
// the notification surface.
func (h *Handler) Load(ctx context.Context) error {
	if err := h.state.LoadAll(ctx); err != nil {
		log.Printf("Initial load failed: %v", err)
		h.notes.Notify(MsgLoadFailed)
		return err
	}
	if len(h.state.Rooms()) == 0 {
		h.notes.Notify(form.MsgRoomsEmpty)
	}
	return nil
}
