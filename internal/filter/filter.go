package filter

import (
	"sort"
	"strings"

	"hostel-desk/internal/model"
)

// AllTypes is the type-filter sentinel that matches every booking.
const AllTypes = "all"

// RoomLookup resolves a booking's room.
type RoomLookup interface {
	Room(id model.ID) (model.Room, bool)
}

// Criteria is the current filter state of the bookings table.
type Criteria struct {
	Type  string // AllTypes or an exact room type
	Query string // free text, matched against student name and roll number
}

// Normalize maps an empty type to AllTypes. The query is kept as typed so the
// search box can redisplay it.
func (c Criteria) Normalize() Criteria {
	c.Type = strings.TrimSpace(c.Type)
	if c.Type == "" {
		c.Type = AllTypes
	}
	return c
}

// IsZero reports whether the criteria select every booking.
func (c Criteria) IsZero() bool {
	c = c.Normalize()
	return c.Type == AllTypes && strings.TrimSpace(c.Query) == ""
}

// Apply returns the bookings that pass both the type filter and the search filter,
// in input order. A booking whose room cannot be resolved never matches a specific
// type.
func Apply(bookings []model.Booking, rooms RoomLookup, c Criteria) []model.Booking {
	c = c.Normalize()
	q := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if matchType(b, rooms, c.Type) && matchSearch(b, q) {
			out = append(out, b)
		}
	}
	return out
}

func matchType(b model.Booking, rooms RoomLookup, typ string) bool {
	if typ == AllTypes {
		return true
	}
	room, ok := rooms.Room(b.RoomID)
	return ok && room.Type == typ
}

func matchSearch(b model.Booking, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.StudentName), q) ||
		strings.Contains(strings.ToLower(b.RollNo), q)
}

// TypeOptions lists the distinct room types of rooms, sorted, for the type select.
func TypeOptions(rooms []model.Room) []string {
	seen := make(map[string]struct{}, len(rooms))
	var types []string
	for _, r := range rooms {
		if r.Type == "" {
			continue
		}
		if _, ok := seen[r.Type]; ok {
			continue
		}
		seen[r.Type] = struct{}{}
		types = append(types, r.Type)
	}
	sort.Strings(types)
	return types
}
