package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/eventpal-api/internal/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type ProfileInput struct {
	Name  string
	Email string
}

// Register creates an account in the users directory and signs it in.
func (s *Store) Register(ctx context.Context, in RegisterInput) (domain.SessionUser, error) {
	var session domain.SessionUser

	err := s.mutate(func() error {
		users, err := s.repo.LoadUsers(ctx)
		if err != nil {
			return fmt.Errorf("s.repo.LoadUsers -> %w", err)
		}

		var floor int64
		for _, u := range users {
			if u.Email == in.Email {
				return ErrDuplicateAccount
			}
			if u.ID > floor {
				floor = u.ID
			}
		}

		hash, err := s.hashPassword(in.Password)
		if err != nil {
			return err
		}

		user := domain.User{
			ID:              s.nextID(floor),
			Name:            in.Name,
			Email:           in.Email,
			Password:        hash,
			Avatar:          domain.AvatarURL(in.Name),
			EventsAttending: []int64{},
			EventsCreated:   []int64{},
			CreatedAt:       s.now().UTC(),
		}

		if err = s.repo.SaveUsers(ctx, append(users, user)); err != nil {
			return fmt.Errorf("s.repo.SaveUsers -> %w", err)
		}

		session = user.Session()
		if err = s.repo.SaveSession(ctx, session); err != nil {
			return fmt.Errorf("s.repo.SaveSession -> %w", err)
		}

		current := session.Clone()
		s.user = &current
		return nil
	})

	return session, err
}

// Login signs in the account whose email and password both match.
func (s *Store) Login(ctx context.Context, email, password string) (domain.SessionUser, error) {
	var session domain.SessionUser

	err := s.mutate(func() error {
		users, err := s.repo.LoadUsers(ctx)
		if err != nil {
			return fmt.Errorf("s.repo.LoadUsers -> %w", err)
		}

		for _, u := range users {
			if u.Email != email {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
				return ErrInvalidCredentials
			}

			session = u.Session()
			if err = s.repo.SaveSession(ctx, session); err != nil {
				return fmt.Errorf("s.repo.SaveSession -> %w", err)
			}

			current := session.Clone()
			s.user = &current
			return nil
		}

		return ErrInvalidCredentials
	})

	return session, err
}

func (s *Store) Logout(ctx context.Context) error {
	return s.mutate(func() error {
		if err := s.repo.ClearSession(ctx); err != nil {
			return fmt.Errorf("s.repo.ClearSession -> %w", err)
		}

		s.user = nil
		return nil
	})
}

// SetUser replaces the session user. A nil user signs out.
func (s *Store) SetUser(ctx context.Context, user *domain.SessionUser) error {
	if user == nil {
		return s.Logout(ctx)
	}

	return s.mutate(func() error {
		next := user.Clone()
		if err := s.persistUserLocked(ctx, next); err != nil {
			return err
		}

		s.user = &next
		return nil
	})
}

// UpdateProfile renames the session user or changes its email. Both the
// session record and the users directory are updated.
func (s *Store) UpdateProfile(ctx context.Context, in ProfileInput) (domain.SessionUser, error) {
	var session domain.SessionUser

	err := s.mutate(func() error {
		if s.user == nil {
			return ErrNotAuthenticated
		}

		if in.Email != s.user.Email {
			users, err := s.repo.LoadUsers(ctx)
			if err != nil {
				return fmt.Errorf("s.repo.LoadUsers -> %w", err)
			}
			for _, u := range users {
				if u.Email == in.Email && u.ID != s.user.ID {
					return ErrDuplicateAccount
				}
			}
		}

		next := s.user.Clone()
		next.Name = in.Name
		next.Email = in.Email
		next.Avatar = domain.AvatarURL(in.Name)

		if err := s.persistUserLocked(ctx, next); err != nil {
			return err
		}

		s.user = &next
		session = next.Clone()
		return nil
	})

	return session, err
}

func (s *Store) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrInvalidPassword
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
