package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

type SortKey string

const (
	SortByDate       SortKey = "date"
	SortByPrice      SortKey = "price"
	SortByPopularity SortKey = "popularity"
	SortByTitle      SortKey = "title"
)

func (k SortKey) Valid() bool {
	switch k {
	case "", SortByDate, SortByPrice, SortByPopularity, SortByTitle:
		return true
	}

	return false
}

func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneEvents(s.events)
}

func (s *Store) Event(id int64) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOfEvent(s.events, id)
	if idx < 0 {
		return domain.Event{}, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}

	return s.events[idx].Clone(), nil
}

// FilteredEvents applies the active search filters to the events.
func (s *Store) FilteredEvents() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return FilterEvents(cloneEvents(s.events), s.filters)
}

// FilterEvents keeps the events matching every non-empty filter, in order.
// The search term matches title, description or any tag; the category must
// match exactly; the location matches as a substring. All comparisons ignore case.
func FilterEvents(events []domain.Event, filters domain.SearchFilters) []domain.Event {
	term := strings.ToLower(filters.SearchTerm)
	category := strings.ToLower(filters.Category)
	location := strings.ToLower(filters.Location)

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if term != "" && !matchesTerm(e, term) {
			continue
		}
		if category != "" && strings.ToLower(e.Category) != category {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(e.Location), location) {
			continue
		}
		out = append(out, e)
	}

	return out
}

func matchesTerm(e domain.Event, term string) bool {
	if strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}

	return false
}

// SortEvents orders events in place by key and returns them. An empty key
// keeps the current order.
func SortEvents(events []domain.Event, key SortKey) []domain.Event {
	switch key {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return eventStart(events[i]).Before(eventStart(events[j]))
		})
	case SortByPrice:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Price < events[j].Price
		})
	case SortByPopularity:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Attendees > events[j].Attendees
		})
	case SortByTitle:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(events, func(i, j int) bool {
			return c.CompareString(events[i].Title, events[j].Title) < 0
		})
	}

	return events
}

// eventStart parses the event date and time. Unparseable dates sort last.
func eventStart(e domain.Event) time.Time {
	start, err := time.Parse("2006-01-02 15:04", e.Date+" "+e.Time)
	if err == nil {
		return start
	}

	start, err = time.Parse("2006-01-02", e.Date)
	if err == nil {
		return start
	}

	return time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
}

// Categories lists the distinct categories of the events in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := []string{}
	for _, e := range s.events {
		if _, ok := seen[e.Category]; ok || e.Category == "" {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}

	return categories
}

// RelatedEvents returns up to limit other events sharing the category of id.
// A limit <= 0 returns all of them.
func (s *Store) RelatedEvents(id int64, limit int) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOfEvent(s.events, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	category := s.events[idx].Category

	related := []domain.Event{}
	for _, e := range s.events {
		if e.ID == id || e.Category != category {
			continue
		}
		related = append(related, e.Clone())
		if limit > 0 && len(related) == limit {
			break
		}
	}

	return related, nil
}

// AttendingEvents returns the events the session user attends.
func (s *Store) AttendingEvents() ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, ErrNotAuthenticated
	}

	out := []domain.Event{}
	for _, e := range s.events {
		if s.user.IsAttending(e.ID) {
			out = append(out, e.Clone())
		}
	}

	return out, nil
}

// CreatedEvents returns the events organized by the session user.
func (s *Store) CreatedEvents() ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, ErrNotAuthenticated
	}

	out := []domain.Event{}
	for _, e := range s.events {
		if s.user.HasCreated(e.ID) || e.OrganizerEmail == s.user.Email {
			out = append(out, e.Clone())
		}
	}

	return out, nil
}
