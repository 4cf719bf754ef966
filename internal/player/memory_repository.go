package player

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	players map[string]Player
}

// NewMemoryRepository builds an in-memory player store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{players: make(map[string]Player)}
}

func (r *memoryRepository) Create(_ context.Context, p Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID] = p
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return Player{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) List(_ context.Context) ([]Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(Player) bool { return true }), nil
}

func (r *memoryRepository) FindByTeam(_ context.Context, team string) ([]Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p Player) bool { return p.Team == team }), nil
}

func (r *memoryRepository) Update(_ context.Context, p Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[p.ID]; !ok {
		return ErrNotFound
	}
	r.players[p.ID] = p
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return ErrNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *memoryRepository) collect(keep func(Player) bool) []Player {
	players := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		if keep(p) {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players
}
