package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"hostel-desk/internal/model"
)

// Action names posted by the page's buttons.
const (
	Add           = "add"
	Edit          = "edit"
	Delete        = "delete"
	ConfirmDelete = "confirm-delete"
	Cancel        = "cancel"
)

// MsgDeleted is shown after a booking is removed.
const MsgDeleted = "Booking deleted"

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNotConfirmed  = errors.New("delete was not confirmed")
	// ErrReload marks a failure of the booking reload that follows a completed
	// backend write.
	ErrReload = errors.New("reload after write failed")
)

// Form is the part of the booking form controller the actions drive.
type Form interface {
	OpenAdd(ctx context.Context) error
	OpenEdit(id model.ID) bool
	Close()
}

// Bookings is the booking store.
type Bookings interface {
	Booking(id model.ID) (model.Booking, bool)
	ReloadBookings(ctx context.Context) error
}

// Deleter removes a booking on the backend.
type Deleter interface {
	DeleteBooking(ctx context.Context, id model.ID) error
}

// Notifier shows a transient message.
type Notifier interface {
	Notify(text string)
}

// Handler runs one action for the row identified by id.
type Handler func(ctx context.Context, id model.ID) error

// Dispatcher is the single entry point for row and modal actions, keyed by action
// name and row id. The pending delete is one value for the whole process: every
// browser using the desk sees the same confirm dialog.
type Dispatcher struct {
	handlers map[string]Handler
	form     Form
	bookings Bookings
	deleter  Deleter
	notes    Notifier

	mu      sync.Mutex
	pending model.ID
}

// NewDispatcher wires the built-in actions.
func NewDispatcher(form Form, bookings Bookings, deleter Deleter, notes Notifier) *Dispatcher {
	d := &Dispatcher{form: form, bookings: bookings, deleter: deleter, notes: notes}
	d.handlers = map[string]Handler{
		Add:           d.add,
		Edit:          d.edit,
		Delete:        d.requestDelete,
		ConfirmDelete: d.confirmDelete,
		Cancel:        d.cancel,
	}
	return d
}

// Dispatch runs the named action.
func (d *Dispatcher) Dispatch(ctx context.Context, action string, id model.ID) error {
	h, ok := d.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return h(ctx, id)
}

// PendingDelete returns the booking awaiting delete confirmation.
func (d *Dispatcher) PendingDelete() (model.Booking, bool) {
	d.mu.Lock()
	id := d.pending
	d.mu.Unlock()
	if id.IsZero() {
		return model.Booking{}, false
	}
	return d.bookings.Booking(id)
}

func (d *Dispatcher) setPending(id model.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = id
}

func (d *Dispatcher) add(ctx context.Context, _ model.ID) error {
	d.setPending("")
	return d.form.OpenAdd(ctx)
}

func (d *Dispatcher) edit(_ context.Context, id model.ID) error {
	d.setPending("")
	if !d.form.OpenEdit(id) {
		log.Printf("edit: booking %s not in store", id)
	}
	return nil
}

// requestDelete asks for confirmation instead of deleting right away.
func (d *Dispatcher) requestDelete(_ context.Context, id model.ID) error {
	if _, ok := d.bookings.Booking(id); !ok {
		log.Printf("delete: booking %s not in store", id)
		return nil
	}
	d.setPending(id)
	return nil
}

func (d *Dispatcher) confirmDelete(ctx context.Context, id model.ID) error {
	d.mu.Lock()
	if id.IsZero() || d.pending != id {
		d.mu.Unlock()
		return ErrNotConfirmed
	}
	d.pending = ""
	d.mu.Unlock()

	if err := d.deleter.DeleteBooking(ctx, id); err != nil {
		return err
	}
	if err := d.bookings.ReloadBookings(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrReload, err)
	}
	d.notes.Notify(MsgDeleted)
	return nil
}

func (d *Dispatcher) cancel(_ context.Context, _ model.ID) error {
	d.setPending("")
	d.form.Close()
	return nil
}
