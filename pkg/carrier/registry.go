package carrier

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages registered shipping carriers.
type Registry struct {
	carriers map[Provider]Carrier
	mu       sync.RWMutex
}

// NewRegistry creates a new carrier registry.
func NewRegistry() *Registry {
	return &Registry{
		carriers: make(map[Provider]Carrier),
	}
}

// Register adds a carrier to the registry.
func (r *Registry) Register(c Carrier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[c.Name()] = c
}

// Get returns a carrier by provider name.
func (r *Registry) Get(name Provider) (Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.carriers[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, name)
}

// All returns all registered carriers.
func (r *Registry) All() []Carrier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Carrier, 0, len(r.carriers))
	for _, c := range r.carriers {
		result = append(result, c)
	}
	return result
}

// Names returns the provider names of all registered carriers.
func (r *Registry) Names() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]Provider, 0, len(r.carriers))
	for name := range r.carriers {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered carriers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carriers)
}

// CompareFees fetches fee quotes from all registered carriers in parallel.
// Errors from individual carriers don't fail the entire comparison.
func (r *Registry) CompareFees(ctx context.Context, req *FeeRequest) ([]*FeeResponse, []error) {
	carriers := r.All()
	if len(carriers) == 0 {
		return nil, []error{ErrCarrierNotFound}
	}

	results := make([]*FeeResponse, 0, len(carriers))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, c := range carriers {
		c := c
		g.Go(func() error {
			resp, err := c.CalculateFee(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
				return nil // continue with other carriers
			}
			results = append(results, resp)
			return nil
		})
	}

	g.Wait()
	return results, errs
}

// FeesFromCarriers fetches fee quotes from specific carriers.
func (r *Registry) FeesFromCarriers(ctx context.Context, req *FeeRequest, names []Provider) ([]*FeeResponse, []error) {
	if len(names) == 0 {
		return r.CompareFees(ctx, req)
	}

	results := make([]*FeeResponse, 0, len(names))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, name := range names {
		name := name
		g.Go(func() error {
			c, err := r.Get(name)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}

			resp, err := c.CalculateFee(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return nil
			}
			results = append(results, resp)
			return nil
		})
	}

	g.Wait()
	return results, errs
}
