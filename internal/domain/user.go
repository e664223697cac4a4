package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const avatarURLFormat = "https://ui-avatars.com/api/?name=%s&background=FF6B6B&color=fff&size=150"

// User is an entry of the users directory. Password holds a bcrypt hash.
type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Password        string    `json:"password"`
	Avatar          string    `json:"avatar"`
	EventsAttending []int64   `json:"eventsAttending"`
	EventsCreated   []int64   `json:"eventsCreated"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SessionUser is the password-free projection of User kept as the current session.
type SessionUser struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Avatar          string    `json:"avatar"`
	EventsAttending []int64   `json:"eventsAttending"`
	EventsCreated   []int64   `json:"eventsCreated"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (u User) Session() SessionUser {
	return SessionUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Avatar:          u.Avatar,
		EventsAttending: cloneIDs(u.EventsAttending),
		EventsCreated:   cloneIDs(u.EventsCreated),
		CreatedAt:       u.CreatedAt,
	}
}

func (u SessionUser) Clone() SessionUser {
	u.EventsAttending = cloneIDs(u.EventsAttending)
	u.EventsCreated = cloneIDs(u.EventsCreated)
	return u
}

func (u SessionUser) IsAttending(eventID int64) bool {
	return containsID(u.EventsAttending, eventID)
}

func (u SessionUser) HasCreated(eventID int64) bool {
	return containsID(u.EventsCreated, eventID)
}

// AvatarURL returns the initials avatar for a display name.
func AvatarURL(name string) string {
	return fmt.Sprintf(avatarURLFormat, strings.ReplaceAll(url.QueryEscape(name), "+", "%20"))
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID returns ids without any occurrence of id.
func RemoveID(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
