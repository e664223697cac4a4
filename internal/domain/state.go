package domain

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type SearchFilters struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
	Location   string `json:"location"`
}

// FiltersPatch is a partial update of SearchFilters. Nil fields are left untouched.
type FiltersPatch struct {
	SearchTerm *string
	Category   *string
	Location   *string
}

// State is a snapshot of the application state. Version increases with every
// committed change.
type State struct {
	Version         uint64        `json:"version"`
	Events          []Event       `json:"events"`
	User            *SessionUser  `json:"user"`
	Theme           Theme         `json:"theme"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	Loading         bool          `json:"loading"`
	SearchFilters   SearchFilters `json:"searchFilters"`
}
