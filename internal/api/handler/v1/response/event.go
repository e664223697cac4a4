package response

import "github.com/vietanh2810/eventpal-api/internal/domain"

type AttendanceResponse struct {
	Event     domain.Event `json:"event"`
	Attending bool         `json:"attending"`
}

type CategoriesResponse struct {
	InUse []string `json:"in_use"`
	Known []string `json:"known"`
}

type ProfileEventsResponse struct {
	Attending []domain.Event `json:"attending"`
	Created   []domain.Event `json:"created"`
}

type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}
