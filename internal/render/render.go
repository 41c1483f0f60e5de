package render

import (
	"html/template"
	"strings"

	"hostel-desk/internal/filter"
	"hostel-desk/internal/model"
)

// Placeholder is shown in the room columns when a booking's room is not cached.
const Placeholder = "-"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML neutralizes the characters that could open markup in stored text.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Row is one rendered booking. Position is 1-based render order, not the id.
type Row struct {
	Position    int      `json:"position"`
	ID          model.ID `json:"id"`
	StudentName string   `json:"studentName"`
	RollNo      string   `json:"rollNo"`
	RoomNumber  string   `json:"roomNumber"`
	RoomType    string   `json:"roomType"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
}

// Cells returns the text columns of the row, escaped for direct insertion into
// the table body.
func (r Row) Cells() []template.HTML {
	cols := []string{r.StudentName, r.RollNo, r.RoomNumber, r.RoomType, r.CheckIn, r.CheckOut}
	cells := make([]template.HTML, len(cols))
	for i, c := range cols {
		cells[i] = template.HTML(EscapeHTML(c))
	}
	return cells
}

// Table is the projection of a filtered booking list. Empty marks the explicit
// "no results" state, in which Rows is nil.
type Table struct {
	Empty bool
	Rows  []Row
}

// BuildTable projects bookings into rows, resolving each booking's room.
func BuildTable(bookings []model.Booking, rooms filter.RoomLookup) Table {
	if len(bookings) == 0 {
		return Table{Empty: true}
	}

	rows := make([]Row, 0, len(bookings))
	for i, b := range bookings {
		row := Row{
			Position:    i + 1,
			ID:          b.ID,
			StudentName: b.StudentName,
			RollNo:      b.RollNo,
			RoomNumber:  Placeholder,
			RoomType:    Placeholder,
			CheckIn:     b.CheckIn.String(),
			CheckOut:    b.CheckOut.String(),
		}
		if room, ok := rooms.Room(b.RoomID); ok {
			row.RoomNumber = room.RoomNumber
			row.RoomType = room.Type
		}
		rows = append(rows, row)
	}
	return Table{Rows: rows}
}
