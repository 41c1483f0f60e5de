package notification

import (
	"log"
	"time"

	"github.com/patrickmn/go-cache"
)

const slotKey = "current"

// Surface is a single-slot transient message display. A new message pre-empts the
// current one; nothing is queued.
type Surface struct {
	slot     *cache.Cache
	duration time.Duration
}

// NewSurface creates a surface that shows each message for d.
func NewSurface(d time.Duration) *Surface {
	return &Surface{
		slot:     cache.New(d, 2*d),
		duration: d,
	}
}

// Notify replaces the displayed message with text.
func (s *Surface) Notify(text string) {
	log.Printf("notify: %s", text)
	s.slot.Set(slotKey, text, s.duration)
}

// Current returns the displayed message, if one is still showing.
func (s *Surface) Current() (string, bool) {
	v, ok := s.slot.Get(slotKey)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Dismiss clears the slot.
func (s *Surface) Dismiss() {
	s.slot.Delete(slotKey)
}
