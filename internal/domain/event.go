package domain

import (
	"time"
)

const PlaceholderImage = "https://via.placeholder.com/400x240/FF6B6B/ffffff?text=Event+Image"

// KnownCategories is the category list offered by the create event form.
var KnownCategories = []string{
	"Music",
	"Sports",
	"Technology",
	"Food & Drink",
	"Arts & Culture",
	"Business",
	"Education",
	"Health & Wellness",
	"Community",
	"Entertainment",
}

type Event struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           string    `json:"date"` // YYYY-MM-DD
	Time           string    `json:"time"` // HH:MM
	Location       string    `json:"location"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	Image          string    `json:"image"`
	Tags           []string  `json:"tags"`
	Attendees      int       `json:"attendees"`
	Organizer      string    `json:"organizer"`
	OrganizerEmail string    `json:"organizerEmail"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EventInput holds the user supplied fields of a new event.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Category    string
	Price       float64
	Image       string
	Tags        []string
}

func (e Event) Clone() Event {
	if e.Tags != nil {
		tags := make([]string, len(e.Tags))
		copy(tags, e.Tags)
		e.Tags = tags
	}
	return e
}

// OwnedBy reports whether u organized the event, by email or by display name.
func (e Event) OwnedBy(u SessionUser) bool {
	return e.OrganizerEmail == u.Email || e.Organizer == u.Name
}

// Valid checks the numeric invariants of an event.
func (e Event) Valid() bool {
	return e.Price >= 0 && e.Attendees >= 0
}

func (e Event) ImageOrPlaceholder() string {
	if e.Image == "" {
		return PlaceholderImage
	}
	return e.Image
}
