package mcp

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

type ToolsetFactory func() Toolset

var toolsetIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type toolsetCatalog struct {
	mu        sync.RWMutex
	factories map[string]ToolsetFactory
}

// catalog is filled from init functions of toolset packages.
var catalog = toolsetCatalog{factories: map[string]ToolsetFactory{}}

func RegisterToolset(id string, factory ToolsetFactory) error {
	if id == "" {
		return fmt.Errorf("toolset id required")
	}
	if !toolsetIDPattern.MatchString(id) {
		return fmt.Errorf("invalid toolset id %q", id)
	}
	if factory == nil {
		return fmt.Errorf("toolset %s: factory required", id)
	}
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	if _, exists := catalog.factories[id]; exists {
		return fmt.Errorf("toolset %s already registered", id)
	}
	catalog.factories[id] = factory
	return nil
}

func MustRegisterToolset(id string, factory ToolsetFactory) {
	if err := RegisterToolset(id, factory); err != nil {
		panic(err)
	}
}

func ToolsetFactoryFor(id string) (ToolsetFactory, bool) {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	factory, ok := catalog.factories[id]
	return factory, ok
}

func RegisteredToolsets() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	ids := make([]string, 0, len(catalog.factories))
	for id := range catalog.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewToolsets builds one toolset per enabled id, in order. Repeated ids are
// built once; an unknown id fails the whole set.
func NewToolsets(ids []string) ([]Toolset, error) {
	seen := map[string]bool{}
	toolsets := make([]Toolset, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		factory, ok := ToolsetFactoryFor(id)
		if !ok {
			return nil, fmt.Errorf("unknown toolset: %s", id)
		}
		toolset := factory()
		if toolset == nil {
			return nil, fmt.Errorf("toolset %s: factory returned nil", id)
		}
		toolsets = append(toolsets, toolset)
	}
	return toolsets, nil
}
