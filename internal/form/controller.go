package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hostel-desk/internal/model"
)

// Mode is the state of the booking modal.
type Mode int

const (
	ModeClosed Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "open-add"
	case ModeEdit:
		return "open-edit"
	default:
		return "closed"
	}
}

// ErrClosed is returned when a submission arrives while the modal is closed.
var ErrClosed = errors.New("booking form is not open")

// Values are the form fields as typed. ID is the hidden identifier: empty for a
// new booking.
type Values struct {
	ID          string `form:"id"`
	StudentName string `form:"studentName"`
	RollNo      string `form:"rollNo"`
	RoomID      string `form:"roomId"`
	CheckIn     string `form:"checkIn"`
	CheckOut    string `form:"checkOut"`
}

// Trimmed returns v with surrounding whitespace removed from every field.
func (v Values) Trimmed() Values {
	return Values{
		ID:          strings.TrimSpace(v.ID),
		StudentName: strings.TrimSpace(v.StudentName),
		RollNo:      strings.TrimSpace(v.RollNo),
		RoomID:      strings.TrimSpace(v.RoomID),
		CheckIn:     strings.TrimSpace(v.CheckIn),
		CheckOut:    strings.TrimSpace(v.CheckOut),
	}
}

// Booking builds the payload. The id is left empty; callers attach it on replace.
func (v Values) Booking() model.Booking {
	return model.Booking{
		StudentName: v.StudentName,
		RollNo:      v.RollNo,
		RoomID:      model.ParseID(v.RoomID),
		CheckIn:     model.Date(v.CheckIn),
		CheckOut:    model.Date(v.CheckOut),
	}
}

// FromBooking fills the form from a stored booking.
func FromBooking(b model.Booking) Values {
	return Values{
		ID:          b.ID.String(),
		StudentName: b.StudentName,
		RollNo:      b.RollNo,
		RoomID:      b.RoomID.String(),
		CheckIn:     b.CheckIn.String(),
		CheckOut:    b.CheckOut.String(),
	}
}

// Rooms is the room cache as seen by the form.
type Rooms interface {
	ReloadRooms(ctx context.Context) error
	Rooms() []model.Room
}

// Bookings is the booking store as seen by the form.
type Bookings interface {
	Booking(id model.ID) (model.Booking, bool)
	ReloadBookings(ctx context.Context) error
}

// Writer sends mutations to the backend.
type Writer interface {
	CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error)
	ReplaceBooking(ctx context.Context, id model.ID, b model.Booking) (model.Booking, error)
}

// Notifier shows a transient message.
type Notifier interface {
	Notify(text string)
}

// Controller drives the add/edit booking modal. There is one modal per process,
// not per browser session: every client of the desk sees the same open form and
// typed values.
type Controller struct {
	rooms    Rooms
	bookings Bookings
	writer   Writer
	notes    Notifier

	mu      sync.Mutex
	mode    Mode
	editing model.ID
	values  Values
}

// New creates a controller with the modal closed.
func New(rooms Rooms, bookings Bookings, writer Writer, notes Notifier) *Controller {
	return &Controller{rooms: rooms, bookings: bookings, writer: writer, notes: notes}
}

// OpenAdd reloads the room cache and opens an empty form. If the reload fails the
// modal is not opened and the state is left as it was.
func (c *Controller) OpenAdd(ctx context.Context) error {
	if err := c.rooms.ReloadRooms(ctx); err != nil {
		c.notes.Notify(MsgRoomsUnavailable)
		return err
	}
	if len(c.rooms.Rooms()) == 0 {
		c.notes.Notify(MsgRoomsEmpty)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeAdd
	c.editing = ""
	c.values = Values{}
	return nil
}

// OpenEdit opens the form filled with the booking's current values. It reports
// false, and changes nothing, when the booking is not in the store.
func (c *Controller) OpenEdit(id model.ID) bool {
	b, ok := c.bookings.Booking(id)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEdit
	c.editing = b.ID
	c.values = FromBooking(b)
	return true
}

// Close hides the modal. Typed values are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeClosed
	c.editing = ""
	c.values = Values{}
}

// Submit validates v and creates or replaces the booking. On a validation error
// the modal stays open showing v. On a backend error the modal also stays open
// and the error is returned. After a successful write the modal closes and the
// booking store is reloaded.
func (c *Controller) Submit(ctx context.Context, v Values) error {
	v = v.Trimmed()

	c.mu.Lock()
	if c.mode == ModeClosed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.values = v
	c.mu.Unlock()

	if err := Validate(v); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.notes.Notify(verr.Message)
		}
		return err
	}

	payload := v.Booking()
	if v.ID == "" {
		if _, err := c.writer.CreateBooking(ctx, payload); err != nil {
			return err
		}
		c.notes.Notify(MsgAdded)
	} else {
		if _, err := c.writer.ReplaceBooking(ctx, model.ParseID(v.ID), payload); err != nil {
			return err
		}
		c.notes.Notify(MsgUpdated)
	}

	c.Close()
	return c.bookings.ReloadBookings(ctx)
}

// View is a snapshot of the modal for rendering.
type View struct {
	Mode    Mode
	Editing model.ID
	Values  Values
}

// Open reports whether the modal is shown.
func (v View) Open() bool { return v.Mode != ModeClosed }

// Title is the modal heading.
func (v View) Title() string {
	if v.Mode == ModeEdit {
		return "Edit Booking"
	}
	return "Add Booking"
}

// View returns the current modal state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{Mode: c.mode, Editing: c.editing, Values: c.values}
}
