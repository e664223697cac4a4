package response

import "github.com/vietanh2810/eventpal-api/internal/domain"

type LoginResponse struct {
	Token string             `json:"token"`
	User  domain.SessionUser `json:"user"`
}
