package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-desk/internal/filter"
	"hostel-desk/internal/model"
	"hostel-desk/internal/render"
)

// GetRooms handles GET /api/rooms with the cached rooms.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms := h.state.Rooms()
	if rooms == nil {
		rooms = []model.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

// GetBookings handles GET /api/bookings?type=&q= with the filtered table rows.
func (h *Handler) GetBookings(c *gin.Context) {
	snap := h.state.Snapshot()
	table := render.BuildTable(filter.Apply(snap.Bookings, snap, criteriaFromQuery(c)), snap)
	rows := table.Rows
	if rows == nil {
		rows = []render.Row{}
	}
	c.JSON(http.StatusOK, rows)
}
