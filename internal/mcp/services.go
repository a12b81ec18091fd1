package mcp

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ServiceRegistry shares long-lived values between toolsets, e.g. the
// Cloud Directory dispatcher published by the aws toolset.
type ServiceRegistry struct {
	mu       sync.RWMutex
	services map[string]any
}

func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{services: map[string]any{}}
}

func (r *ServiceRegistry) Register(name string, svc any) error {
	if r == nil {
		return errors.New("service registry is nil")
	}
	if name == "" {
		return errors.New("service name required")
	}
	if svc == nil {
		return fmt.Errorf("service %s: value required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}
	r.services[name] = svc
	return nil
}

func (r *ServiceRegistry) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[name]
	return svc, ok
}

func (r *ServiceRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupService returns the service registered under name as a T.
func LookupService[T any](r *ServiceRegistry, name string) (T, error) {
	var zero T
	svc, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("service %s not registered", name)
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, fmt.Errorf("service %s has type %T, want %T", name, svc, zero)
	}
	return typed, nil
}
