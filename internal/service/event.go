package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

// AddEvent creates an event organized by the session user.
func (s *Store) AddEvent(ctx context.Context, in domain.EventInput) (domain.Event, error) {
	var created domain.Event

	err := s.mutate(func() error {
		if s.user == nil {
			return ErrNotAuthenticated
		}
		if in.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrInvalidEvent)
		}

		var floor int64
		for _, e := range s.events {
			if e.ID > floor {
				floor = e.ID
			}
		}

		tags := in.Tags
		if tags == nil {
			tags = []string{}
		}

		event := domain.Event{
			ID:             s.nextID(floor),
			Title:          in.Title,
			Description:    in.Description,
			Date:           in.Date,
			Time:           in.Time,
			Location:       in.Location,
			Category:       in.Category,
			Price:          in.Price,
			Image:          in.Image,
			Tags:           tags,
			Attendees:      0,
			Organizer:      s.user.Name,
			OrganizerEmail: s.user.Email,
			CreatedAt:      s.now().UTC(),
		}
		event.Image = event.ImageOrPlaceholder()

		events := append(cloneEvents(s.events), event)
		if err := s.repo.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("s.repo.SaveEvents -> %w", err)
		}

		user := s.user.Clone()
		user.EventsCreated = append(user.EventsCreated, event.ID)
		if err := s.persistUserLocked(ctx, user); err != nil {
			return err
		}

		s.events = events
		s.user = &user
		created = event.Clone()
		return nil
	})

	return created, err
}

// UpdateEvent replaces the stored event with the same id. Organizer fields
// and the creation time keep their stored values. Unknown ids are ignored and
// reported through the returned flag.
func (s *Store) UpdateEvent(ctx context.Context, event domain.Event) (bool, error) {
	if !event.Valid() {
		return false, fmt.Errorf("%w: price and attendees must not be negative", ErrInvalidEvent)
	}

	var updated bool

	err := s.mutate(func() error {
		idx := indexOfEvent(s.events, event.ID)
		if idx < 0 {
			return errUnchanged
		}

		events := cloneEvents(s.events)
		next := event.Clone()
		next.Organizer = events[idx].Organizer
		next.OrganizerEmail = events[idx].OrganizerEmail
		next.CreatedAt = events[idx].CreatedAt
		next.Image = next.ImageOrPlaceholder()
		if next.Tags == nil {
			next.Tags = []string{}
		}
		events[idx] = next

		if err := s.repo.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("s.repo.SaveEvents -> %w", err)
		}

		s.events = events
		updated = true
		return nil
	})

	return updated, err
}

// DeleteEvent removes an event organized by the session user.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	return s.mutate(func() error {
		if s.user == nil {
			return ErrNotAuthenticated
		}

		idx := indexOfEvent(s.events, id)
		if idx < 0 {
			return ErrEventNotFound
		}
		if !s.events[idx].OwnedBy(*s.user) {
			return ErrPermissionDenied
		}

		events := make([]domain.Event, 0, len(s.events)-1)
		for i, e := range s.events {
			if i != idx {
				events = append(events, e.Clone())
			}
		}
		if err := s.repo.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("s.repo.SaveEvents -> %w", err)
		}

		user := s.user.Clone()
		user.EventsCreated = domain.RemoveID(user.EventsCreated, id)
		if err := s.persistUserLocked(ctx, user); err != nil {
			return err
		}

		s.events = events
		s.user = &user
		return nil
	})
}

// ToggleEventAttendance flips the session user's attendance of an event and
// adjusts its attendee count. Without a session it does nothing.
func (s *Store) ToggleEventAttendance(ctx context.Context, id int64) (domain.Event, bool, error) {
	var (
		event     domain.Event
		attending bool
	)

	err := s.mutate(func() error {
		if s.user == nil {
			return errUnchanged
		}

		idx := indexOfEvent(s.events, id)
		if idx < 0 {
			return ErrEventNotFound
		}

		user := s.user.Clone()
		events := cloneEvents(s.events)

		if user.IsAttending(id) {
			user.EventsAttending = domain.RemoveID(user.EventsAttending, id)
			if events[idx].Attendees > 0 {
				events[idx].Attendees--
			}
		} else {
			user.EventsAttending = append(user.EventsAttending, id)
			events[idx].Attendees++
			attending = true
		}

		if err := s.persistUserLocked(ctx, user); err != nil {
			return err
		}
		if err := s.repo.SaveEvents(ctx, events); err != nil {
			return fmt.Errorf("s.repo.SaveEvents -> %w", err)
		}

		s.user = &user
		s.events = events
		event = events[idx].Clone()
		return nil
	})

	return event, attending, err
}

func indexOfEvent(events []domain.Event, id int64) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}

	return -1
}
