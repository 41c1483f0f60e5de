package form

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-desk/internal/model"
)

// fakeDesk stands in for the caches, the backend writer and the notification
// surface at once.
type fakeDesk struct {
	rooms       []model.Room
	roomsErr    error
	bookings    map[model.ID]model.Booking
	writeErr    error
	created     []model.Booking
	replaced    map[model.ID]model.Booking
	reloads     int
	notes       []string
	nextID      int
	roomReloads int
}

func newFakeDesk() *fakeDesk {
	return &fakeDesk{
		rooms:    []model.Room{{ID: "1", RoomNumber: "A-101", Type: "single"}},
		bookings: map[model.ID]model.Booking{},
		replaced: map[model.ID]model.Booking{},
		nextID:   100,
	}
}

func (f *fakeDesk) ReloadRooms(ctx context.Context) error {
	f.roomReloads++
	return f.roomsErr
}

func (f *fakeDesk) Rooms() []model.Room { return f.rooms }

func (f *fakeDesk) Booking(id model.ID) (model.Booking, bool) {
	b, ok := f.bookings[id]
	return b, ok
}

func (f *fakeDesk) ReloadBookings(ctx context.Context) error {
	f.reloads++
	return nil
}

func (f *fakeDesk) CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error) {
	if f.writeErr != nil {
		return model.Booking{}, f.writeErr
	}
	f.nextID++
	b.ID = model.ID(strconv.Itoa(f.nextID))
	f.created = append(f.created, b)
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeDesk) ReplaceBooking(ctx context.Context, id model.ID, b model.Booking) (model.Booking, error) {
	if f.writeErr != nil {
		return model.Booking{}, f.writeErr
	}
	b.ID = id
	f.replaced[id] = b
	f.bookings[id] = b
	return b, nil
}

func (f *fakeDesk) Notify(text string) { f.notes = append(f.notes, text) }

func (f *fakeDesk) lastNote() string {
	if len(f.notes) == 0 {
		return ""
	}
	return f.notes[len(f.notes)-1]
}

func newController(f *fakeDesk) *Controller {
	return New(f, f, f, f)
}

func validValues() Values {
	return Values{StudentName: "Asha", RollNo: "CS-1", RoomID: "1", CheckIn: "2025-01-01", CheckOut: "2025-01-10"}
}

func TestController_OpenAdd(t *testing.T) {
	f := newFakeDesk()
	c := newController(f)

	require.NoError(t, c.OpenAdd(context.Background()))
	view := c.View()
	assert.Equal(t, ModeAdd, view.Mode)
	assert.True(t, view.Open())
	assert.Equal(t, "Add Booking", view.Title())
	assert.Equal(t, Values{}, view.Values)
	assert.Equal(t, 1, f.roomReloads, "rooms are reloaded each time the add form opens")
}

func TestController_OpenAddClearsPreviousEdit(t *testing.T) {
	f := newFakeDesk()
	f.bookings["7"] = model.Booking{ID: "7", StudentName: "Ravi", RoomID: "1"}
	c := newController(f)

	require.True(t, c.OpenEdit("7"))
	require.NoError(t, c.OpenAdd(context.Background()))
	assert.Equal(t, "", c.View().Values.ID)
	assert.Equal(t, "", c.View().Values.StudentName)
}

func TestController_OpenAddRoomReloadFails(t *testing.T) {
	f := newFakeDesk()
	f.roomsErr = errors.New("connection refused")
	c := newController(f)

	err := c.OpenAdd(context.Background())
	assert.ErrorIs(t, err, f.roomsErr)
	assert.Equal(t, ModeClosed, c.View().Mode)
	assert.Equal(t, MsgRoomsUnavailable, f.lastNote())
}

func TestController_OpenAddWithNoRooms(t *testing.T) {
	f := newFakeDesk()
	f.rooms = nil
	c := newController(f)

	require.NoError(t, c.OpenAdd(context.Background()))
	assert.Equal(t, ModeAdd, c.View().Mode)
	assert.Equal(t, MsgRoomsEmpty, f.lastNote())
}

func TestController_OpenEdit(t *testing.T) {
	f := newFakeDesk()
	f.bookings["7"] = model.Booking{ID: "7", StudentName: "Ravi", RollNo: "EE-2", RoomID: "1", CheckIn: "2025-02-01", CheckOut: "2025-02-09"}
	c := newController(f)

	assert.False(t, c.OpenEdit("404"))
	assert.Equal(t, ModeClosed, c.View().Mode, "unknown booking is a no-op")

	require.True(t, c.OpenEdit("7"))
	view := c.View()
	assert.Equal(t, ModeEdit, view.Mode)
	assert.Equal(t, model.ID("7"), view.Editing)
	assert.Equal(t, "Edit Booking", view.Title())
	assert.Equal(t, Values{ID: "7", StudentName: "Ravi", RollNo: "EE-2", RoomID: "1", CheckIn: "2025-02-01", CheckOut: "2025-02-09"}, view.Values)
}

func TestController_SubmitCreates(t *testing.T) {
	f := newFakeDesk()
	c := newController(f)
	require.NoError(t, c.OpenAdd(context.Background()))

	v := validValues()
	v.StudentName = "  Asha  "
	require.NoError(t, c.Submit(context.Background(), v))

	require.Len(t, f.created, 1)
	assert.Equal(t, model.Booking{StudentName: "Asha", RollNo: "CS-1", RoomID: "1", CheckIn: "2025-01-01", CheckOut: "2025-01-10"}, f.created[0])
	assert.Empty(t, f.replaced)
	assert.Equal(t, MsgAdded, f.lastNote())
	assert.Equal(t, ModeClosed, c.View().Mode)
	assert.Equal(t, 1, f.reloads)
}

func TestController_SubmitReplaces(t *testing.T) {
	f := newFakeDesk()
	f.bookings["7"] = model.Booking{ID: "7", StudentName: "Ravi", RollNo: "EE-2", RoomID: "1", CheckIn: "2025-02-01", CheckOut: "2025-02-09"}
	c := newController(f)
	require.True(t, c.OpenEdit("7"))

	v := c.View().Values
	v.CheckOut = "2025-03-01"
	require.NoError(t, c.Submit(context.Background(), v))

	require.Contains(t, f.replaced, model.ID("7"))
	assert.Equal(t, model.Date("2025-03-01"), f.replaced["7"].CheckOut)
	assert.Empty(t, f.created)
	assert.Equal(t, MsgUpdated, f.lastNote())
	assert.Equal(t, ModeClosed, c.View().Mode)
}

func TestController_SubmitValidation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(v *Values)
		field   string
		message string
	}{
		{name: "no room", mutate: func(v *Values) { v.RoomID = "" }, field: "RoomID", message: MsgSelectRoom},
		{name: "no room wins over bad dates", mutate: func(v *Values) { v.RoomID = ""; v.CheckOut = v.CheckIn }, field: "RoomID", message: MsgSelectRoom},
		{name: "checkout equals checkin", mutate: func(v *Values) { v.CheckOut = v.CheckIn }, field: "CheckOut", message: MsgCheckOutOrder},
		{name: "checkout before checkin", mutate: func(v *Values) { v.CheckOut = "2024-12-31" }, field: "CheckOut", message: MsgCheckOutOrder},
		{name: "missing checkin", mutate: func(v *Values) { v.CheckIn = "" }, field: "CheckIn", message: MsgInvalidDates},
		{name: "malformed checkout", mutate: func(v *Values) { v.CheckOut = "10/01/2025" }, field: "CheckOut", message: MsgInvalidDates},
		{name: "missing student name", mutate: func(v *Values) { v.StudentName = "   " }, field: "StudentName", message: MsgNameRequired},
		{name: "missing roll number", mutate: func(v *Values) { v.RollNo = "" }, field: "RollNo", message: MsgNameRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeDesk()
			c := newController(f)
			require.NoError(t, c.OpenAdd(context.Background()))

			v := validValues()
			tc.mutate(&v)
			err := c.Submit(context.Background(), v)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
			assert.Equal(t, tc.message, f.lastNote())

			assert.Empty(t, f.created, "store must not be mutated")
			assert.Zero(t, f.reloads)
			view := c.View()
			assert.Equal(t, ModeAdd, view.Mode, "form stays open")
			assert.Equal(t, v.Trimmed(), view.Values, "typed input is preserved")
		})
	}
}

func TestController_EditToInvalidRangeLeavesBookingUnchanged(t *testing.T) {
	f := newFakeDesk()
	original := model.Booking{ID: "7", StudentName: "Ravi", RollNo: "EE-2", RoomID: "1", CheckIn: "2025-02-01", CheckOut: "2025-02-09"}
	f.bookings["7"] = original
	c := newController(f)
	require.True(t, c.OpenEdit("7"))

	v := c.View().Values
	v.CheckIn = "2025-02-10"
	v.CheckOut = "2025-02-05"
	err := c.Submit(context.Background(), v)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, original, f.bookings["7"])
	assert.Empty(t, f.replaced)
	assert.Equal(t, ModeEdit, c.View().Mode)
}

func TestController_SubmitBackendFailureKeepsFormOpen(t *testing.T) {
	f := newFakeDesk()
	f.writeErr = errors.New("backend down")
	c := newController(f)
	require.NoError(t, c.OpenAdd(context.Background()))

	err := c.Submit(context.Background(), validValues())
	assert.ErrorIs(t, err, f.writeErr)
	assert.Equal(t, ModeAdd, c.View().Mode)
	assert.Equal(t, validValues(), c.View().Values)
	assert.Zero(t, f.reloads)
}

func TestController_SubmitWhileClosed(t *testing.T) {
	f := newFakeDesk()
	c := newController(f)

	assert.ErrorIs(t, c.Submit(context.Background(), validValues()), ErrClosed)
	assert.Empty(t, f.created)
}

func TestController_Close(t *testing.T) {
	f := newFakeDesk()
	c := newController(f)
	require.NoError(t, c.OpenAdd(context.Background()))
	c.Close()
	assert.Equal(t, ModeClosed, c.View().Mode)
	assert.False(t, c.View().Open())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "closed", ModeClosed.String())
	assert.Equal(t, "open-add", ModeAdd.String())
	assert.Equal(t, "open-edit", ModeEdit.String())
}
