package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vietanh2810/eventpal-api/internal/repository"
)

// Registry keeps one hydrated Store per profile. Profiles share the record
// store through namespaced keys.
type Registry struct {
	dao       repository.RecordDAO
	keyPrefix string
	opts      []Option

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(dao repository.RecordDAO, keyPrefix string, opts ...Option) *Registry {
	return &Registry{
		dao:       dao,
		keyPrefix: keyPrefix,
		opts:      opts,
		stores:    make(map[string]*Store),
	}
}

// Store returns the store of profileID, hydrating it on first use.
func (r *Registry) Store(ctx context.Context, profileID string) (*Store, error) {
	if profileID == "" {
		profileID = repository.DefaultProfile
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[profileID]; ok {
		return s, nil
	}

	repo := repository.NewStateRepository(repository.NewNamespacedDAO(r.dao, profileID), r.keyPrefix)
	s := NewStore(repo, r.opts...)
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("s.Init -> %w", err)
	}

	r.stores[profileID] = s
	return s, nil
}

func (r *Registry) Profiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make([]string, 0, len(r.stores))
	for id := range r.stores {
		profiles = append(profiles, id)
	}
	sort.Strings(profiles)

	return profiles
}
