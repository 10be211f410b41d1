// Package location caches the state list and resolves cities on demand.
package location

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// API is the slice of the backend client the index needs.
type API interface {
	States(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, state string) ([]string, error)
}

// Index holds the state list, loaded once at startup and shared by every
// session. City lists are not held here: they belong to whichever wizard
// draft requested them, so LoadCities returns the list without storing it.
type Index struct {
	api API

	mu     sync.RWMutex
	states []string
}

// NewIndex creates an empty index over the given backend API.
func NewIndex(api API) *Index {
	return &Index{api: api}
}

// LoadStates populates the state list. Failures are swallowed: the list
// stays empty and the UI degrades to an empty dropdown.
func (i *Index) LoadStates(ctx context.Context) {
	states, err := i.api.States(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load states, state list stays empty")
		return
	}

	i.mu.Lock()
	i.states = states
	i.mu.Unlock()
}

// States returns the loaded state list.
func (i *Index) States() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.states
}

// LoadCities fetches the cities of the given state. Every selection
// re-fetches; nothing is cached. An empty state returns an empty list
// without issuing a request.
func (i *Index) LoadCities(ctx context.Context, state string) ([]string, error) {
	if state == "" {
		return nil, nil
	}
	return i.api.Cities(ctx, state)
}
