package resource

import (
	"context"

	"hostel-desk/internal/model"
)

// Hostel binds the generic client to the rooms and bookings collections.
type Hostel struct {
	client   *Client
	rooms    string
	bookings string
}

// NewHostel creates typed accessors for the two collections.
func NewHostel(c *Client, roomsCollection, bookingsCollection string) *Hostel {
	return &Hostel{client: c, rooms: roomsCollection, bookings: bookingsCollection}
}

// Rooms fetches every room.
func (h *Hostel) Rooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := h.client.FetchAll(ctx, h.rooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Bookings fetches every booking.
func (h *Hostel) Bookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := h.client.FetchAll(ctx, h.bookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking posts b without an id and returns the stored booking.
func (h *Hostel) CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error) {
	b.ID = ""
	var created model.Booking
	err := h.client.Create(ctx, h.bookings, b, &created)
	return created, err
}

// ReplaceBooking sends every field of b with id attached.
func (h *Hostel) ReplaceBooking(ctx context.Context, id model.ID, b model.Booking) (model.Booking, error) {
	b.ID = id
	var updated model.Booking
	err := h.client.Replace(ctx, h.bookings, id, b, &updated)
	return updated, err
}

// DeleteBooking removes the booking with the given id.
func (h *Hostel) DeleteBooking(ctx context.Context, id model.ID) error {
	return h.client.Remove(ctx, h.bookings, id)
}
