package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hostel-desk/internal/filter"
	"hostel-desk/internal/form"
	"hostel-desk/internal/model"
	"hostel-desk/internal/render"
)

type filterView struct {
	Type    string
	Query   string
	Options []string
	Active  bool
}

type formView struct {
	form.View
	Rooms []model.Room
}

type pageView struct {
	Title         string
	Notice        string
	Filter        filterView
	Table         render.Table
	Form          formView
	PendingDelete *model.Booking
}

func criteriaFromQuery(c *gin.Context) filter.Criteria {
	return filter.Criteria{Type: c.Query("type"), Query: c.Query("q")}.Normalize()
}

// GetPage handles GET /: the filtered bookings table, the modal and the notice.
func (h *Handler) GetPage(c *gin.Context) {
	snap := h.state.Snapshot()
	if !snap.RoomsLoaded || !snap.BookingsLoaded {
		h.Load(c.Request.Context())
		snap = h.state.Snapshot()
	}

	crit := criteriaFromQuery(c)
	options := filter.TypeOptions(snap.Rooms)
	if crit.Type != filter.AllTypes && !contains(options, crit.Type) {
		options = append(options, crit.Type)
	}

	view := pageView{
		Title: h.title,
		Filter: filterView{
			Type:    crit.Type,
			Query:   crit.Query,
			Options: options,
			Active:  !crit.IsZero(),
		},
		Table: render.BuildTable(filter.Apply(snap.Bookings, snap, crit), snap),
		Form:  formView{View: h.form.View(), Rooms: snap.Rooms},
	}
	if notice, ok := h.notes.Current(); ok {
		view.Notice = notice
	}
	if b, ok := h.actions.PendingDelete(); ok {
		view.PendingDelete = &b
	}

	c.HTML(http.StatusOK, "index.html", view)
}

// backToPage redirects to the page, keeping the filter state the posting form
// carried in its hidden fields.
func backToPage(c *gin.Context) {
	q := url.Values{}
	if t := c.PostForm("type"); t != "" && t != filter.AllTypes {
		q.Set("type", t)
	}
	if s := c.PostForm("q"); s != "" {
		q.Set("q", s)
	}
	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
