package ticket

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	tickets map[string]Ticket
}

// NewMemoryRepository builds an in-memory ticket store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{tickets: make(map[string]Ticket)}
}

func (r *memoryRepository) Create(_ context.Context, t Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID] = t
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return Ticket{}, ErrNotFound
	}
	return t, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tickets := make([]Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		tickets = append(tickets, t)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].Date.Before(tickets[j].Date) })
	return tickets, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}
