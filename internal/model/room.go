package model

// Room is a hostel room owned by the backend. The desk only reads rooms.
type Room struct {
	ID         ID     `json:"id"`
	RoomNumber string `json:"roomNumber"`
	Type       string `json:"type"`
}

// Label is the text shown for the room in the booking form's select.
func (r Room) Label() string {
	return r.RoomNumber + " (" + r.Type + ")"
}
