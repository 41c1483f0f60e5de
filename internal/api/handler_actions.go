package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-desk/internal/actions"
	"hostel-desk/internal/form"
	"hostel-desk/internal/model"
	"hostel-desk/internal/resource"
)

// PostAction handles POST /actions, the single entry point for row and modal
// buttons. The form carries the action name and the row's booking id.
func (h *Handler) PostAction(c *gin.Context) {
	action := c.PostForm("action")
	id := model.ParseID(c.PostForm("id"))

	err := h.actions.Dispatch(c.Request.Context(), action, id)
	switch {
	case err == nil:
	case errors.Is(err, actions.ErrUnknownAction):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, actions.ErrNotConfirmed):
		h.notes.Notify(MsgNotConfirmed)
	case action == actions.Add:
		// The form controller already reported the failed room reload.
		log.Printf("Add booking: %v", err)
	case errors.Is(err, actions.ErrReload):
		// The booking is gone from the backend; only the listing is stale.
		log.Printf("Reload after delete of booking %s failed: %v", id, err)
		h.notes.Notify(MsgLoadFailed)
	case resource.IsNotFound(err):
		h.bookingGone(c, id)
	default:
		log.Printf("Action %s on booking %s failed: %v", action, id, err)
		h.notes.Notify(MsgDeleteFailed)
	}
	backToPage(c)
}

// PostBooking handles POST /bookings, the modal's submit.
func (h *Handler) PostBooking(c *gin.Context) {
	var values form.Values
	if err := c.ShouldBind(&values); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.form.Submit(c.Request.Context(), values)
	var verr *form.ValidationError
	switch {
	case err == nil, errors.As(err, &verr):
		// Success and validation messages are already on the notification surface.
	case errors.Is(err, form.ErrClosed):
		h.notes.Notify(MsgFormClosed)
	case !h.form.View().Open():
		// The write went through; only the reload afterwards failed.
		log.Printf("Reload after save failed: %v", err)
		h.notes.Notify(MsgLoadFailed)
	case resource.IsNotFound(err):
		h.form.Close()
		h.bookingGone(c, model.ParseID(values.ID))
	default:
		log.Printf("Saving booking failed: %v", err)
		h.notes.Notify(MsgSaveFailed)
	}
	backToPage(c)
}

// bookingGone handles a backend 404 for a booking the desk still lists: someone
// else removed it, so the listing is refreshed.
func (h *Handler) bookingGone(c *gin.Context, id model.ID) {
	log.Printf("Booking %s no longer exists on the backend", id)
	if err := h.state.ReloadBookings(c.Request.Context()); err != nil {
		log.Printf("Reload after missing booking failed: %v", err)
	}
	h.notes.Notify(MsgBookingGone)
}

// PostDismiss handles POST /notice/dismiss: the toast's close button.
func (h *Handler) PostDismiss(c *gin.Context) {
	h.notes.Dismiss()
	backToPage(c)
}

// PostRefresh handles POST /refresh: reload rooms and bookings from the backend.
func (h *Handler) PostRefresh(c *gin.Context) {
	h.Load(c.Request.Context())
	backToPage(c)
}
