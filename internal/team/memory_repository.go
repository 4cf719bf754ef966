package team

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu    sync.RWMutex
	teams map[string]Team
}

// NewMemoryRepository builds an in-memory team store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{teams: make(map[string]Team)}
}

func (r *memoryRepository) Create(_ context.Context, t Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return ErrExists
		}
	}
	r.teams[t.ID] = t
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.teams[id]
	if !ok {
		return Team{}, ErrNotFound
	}
	return t, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	teams := make([]Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (r *memoryRepository) Update(_ context.Context, t Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.teams[t.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Issuer = t.Issuer
	existing.Description = t.Description
	existing.Logo = t.Logo
	existing.IPFSHash = t.IPFSHash
	existing.UpdatedAt = time.Now().UTC()
	r.teams[t.ID] = existing
	return nil
}

func (r *memoryRepository) UpdateAmount(_ context.Context, id string, amount int64) (Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return Team{}, ErrNotFound
	}
	t.Amount = amount
	t.UpdatedAt = time.Now().UTC()
	r.teams[id] = t
	return t, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return ErrNotFound
	}
	delete(r.teams, id)
	return nil
}
