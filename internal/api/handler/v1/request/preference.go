package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

var profileIDExp = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type ThemeRequest struct {
	Theme string `json:"theme"`
}

func (req *ThemeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Theme, validation.Required, validation.In(string(domain.ThemeLight), string(domain.ThemeDark))),
	)
}

// FiltersRequest is a partial update; omitted fields keep their value.
type FiltersRequest struct {
	SearchTerm *string `json:"searchTerm"`
	Category   *string `json:"category"`
	Location   *string `json:"location"`
}

func (req *FiltersRequest) Patch() domain.FiltersPatch {
	return domain.FiltersPatch{
		SearchTerm: req.SearchTerm,
		Category:   req.Category,
		Location:   req.Location,
	}
}

func ValidateProfileID(profileID string) error {
	return validation.Validate(profileID, validation.Required, validation.Match(profileIDExp))
}
