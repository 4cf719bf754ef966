package jersey

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	jerseys map[string]Jersey
}

// NewMemoryRepository builds an in-memory jersey store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{jerseys: make(map[string]Jersey)}
}

func (r *memoryRepository) Create(_ context.Context, j Jersey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jerseys[j.ID] = j
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Jersey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jerseys[id]
	if !ok {
		return Jersey{}, ErrNotFound
	}
	return j, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Jersey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jerseys := make([]Jersey, 0, len(r.jerseys))
	for _, j := range r.jerseys {
		jerseys = append(jerseys, j)
	}
	sort.Slice(jerseys, func(i, j int) bool { return jerseys[i].CreatedAt.Before(jerseys[j].CreatedAt) })
	return jerseys, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jerseys[id]; !ok {
		return ErrNotFound
	}
	delete(r.jerseys, id)
	return nil
}
