package profile

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Registry is thread-safe in-memory storage for loaded profiles, keyed by
// profile ID. Reloads replace the whole set atomically so an evaluation never
// observes a half-updated rulebook.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	loadTime time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
		loadTime: time.Now(),
	}
}

// Register adds or replaces a single profile.
func (r *Registry) Register(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	if p.ID == "" {
		return fmt.Errorf("profile ID cannot be empty")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	r.loadTime = time.Now()
	return nil
}

// Get returns the profile with the given ID.
func (r *Registry) Get(id string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, &NotFoundError{Key: id}
	}
	return p, nil
}

// ByCategory returns all profiles for a discipline category.
func (r *Registry) ByCategory(cat Category) []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Profile
	for _, p := range r.profiles {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// List returns all registered profiles.
func (r *Registry) List() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out
}

// Count returns the number of registered profiles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// LoadTime returns when the registry contents last changed.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadTime
}

// ReplaceAll atomically swaps the registry contents for the given set.
// Profiles without IDs are rejected; the registry is left unchanged on error.
func (r *Registry) ReplaceAll(profiles []*Profile) error {
	next := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		if p == nil || p.ID == "" {
			return fmt.Errorf("profile ID cannot be empty")
		}
		if err := p.Validate(); err != nil {
			return err
		}
		next[p.ID] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = next
	r.loadTime = time.Now()
	return nil
}

// Reload replaces the registry contents from a source.
func (r *Registry) Reload(ctx context.Context, src Source) error {
	profiles, err := src.LoadProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	return r.ReplaceAll(profiles)
}
