package model

import "time"

// DateLayout is the calendar date format used on the wire and in form inputs.
const DateLayout = "2006-01-02"

// Date is a calendar date kept in its wire form. Parsing happens on demand so a
// malformed stored value never breaks a whole listing.
type Date string

// Time parses the date. The second result is false when the value is not a valid date.
func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// After reports whether d is a valid date strictly later than other.
func (d Date) After(other Date) bool {
	a, ok := d.Time()
	if !ok {
		return false
	}
	b, ok := other.Time()
	if !ok {
		return false
	}
	return a.After(b)
}

func (d Date) String() string { return string(d) }

// Booking assigns a student to a room for a date range. ID is empty until the
// backend assigns one on create.
type Booking struct {
	ID          ID     `json:"id,omitempty"`
	StudentName string `json:"studentName"`
	RollNo      string `json:"rollNo"`
	RoomID      ID     `json:"roomId"`
	CheckIn     Date   `json:"checkIn"`
	CheckOut    Date   `json:"checkOut"`
}
