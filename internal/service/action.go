package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

// Action is one of the requests accepted by Store.Dispatch.
type Action interface {
	isAction()
}

type (
	RegisterAction         struct{ Input RegisterInput }
	LoginAction            struct{ Email, Password string }
	LogoutAction           struct{}
	SetUserAction          struct{ User *domain.SessionUser }
	UpdateProfileAction    struct{ Input ProfileInput }
	AddEventAction         struct{ Input domain.EventInput }
	UpdateEventAction      struct{ Event domain.Event }
	DeleteEventAction      struct{ ID int64 }
	ToggleAttendanceAction struct{ ID int64 }
	SetThemeAction         struct{ Theme domain.Theme }
	ToggleThemeAction      struct{}
	SetSearchFiltersAction struct{ Patch domain.FiltersPatch }
)

func (RegisterAction) isAction()         {}
func (LoginAction) isAction()            {}
func (LogoutAction) isAction()           {}
func (SetUserAction) isAction()          {}
func (UpdateProfileAction) isAction()    {}
func (AddEventAction) isAction()         {}
func (UpdateEventAction) isAction()      {}
func (DeleteEventAction) isAction()      {}
func (ToggleAttendanceAction) isAction() {}
func (SetThemeAction) isAction()         {}
func (ToggleThemeAction) isAction()      {}
func (SetSearchFiltersAction) isAction() {}

// Result carries whatever the dispatched action produced.
type Result struct {
	User      *domain.SessionUser
	Event     *domain.Event
	Attending bool
	Updated   bool
	Theme     domain.Theme
	Filters   domain.SearchFilters
}

func (s *Store) Dispatch(ctx context.Context, action Action) (Result, error) {
	switch a := action.(type) {
	case RegisterAction:
		user, err := s.Register(ctx, a.Input)
		if err != nil {
			return Result{}, err
		}
		return Result{User: &user}, nil

	case LoginAction:
		user, err := s.Login(ctx, a.Email, a.Password)
		if err != nil {
			return Result{}, err
		}
		return Result{User: &user}, nil

	case LogoutAction:
		return Result{}, s.Logout(ctx)

	case SetUserAction:
		return Result{User: a.User}, s.SetUser(ctx, a.User)

	case UpdateProfileAction:
		user, err := s.UpdateProfile(ctx, a.Input)
		if err != nil {
			return Result{}, err
		}
		return Result{User: &user}, nil

	case AddEventAction:
		event, err := s.AddEvent(ctx, a.Input)
		if err != nil {
			return Result{}, err
		}
		return Result{Event: &event}, nil

	case UpdateEventAction:
		updated, err := s.UpdateEvent(ctx, a.Event)
		return Result{Updated: updated}, err

	case DeleteEventAction:
		return Result{}, s.DeleteEvent(ctx, a.ID)

	case ToggleAttendanceAction:
		event, attending, err := s.ToggleEventAttendance(ctx, a.ID)
		if err != nil {
			return Result{}, err
		}
		return Result{Event: &event, Attending: attending}, nil

	case SetThemeAction:
		if err := s.SetTheme(ctx, a.Theme); err != nil {
			return Result{}, err
		}
		return Result{Theme: a.Theme}, nil

	case ToggleThemeAction:
		theme, err := s.ToggleTheme(ctx)
		return Result{Theme: theme}, err

	case SetSearchFiltersAction:
		return Result{Filters: s.SetSearchFilters(a.Patch)}, nil

	default:
		return Result{}, fmt.Errorf("unsupported action %T", action)
	}
}
