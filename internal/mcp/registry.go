package mcp

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"clouddirmcp/internal/config"
)

type Registry interface {
	Add(spec ToolSpec) error
	List() []ToolInfo
	Get(name string) (ToolSpec, bool)
}

// ToolRegistry holds the tools enabled for one runtime. Tools hidden by the
// safety settings are remembered in Filtered so the server can report them.
type ToolRegistry struct {
	mu       sync.RWMutex
	cfg      *config.Config
	tools    map[string]ToolSpec
	filtered []string
}

func NewRegistry(cfg *config.Config) *ToolRegistry {
	return &ToolRegistry{cfg: cfg, tools: map[string]ToolSpec{}}
}

// Add registers spec unless the safety settings filter it out. A spec
// without a safety class is treated as a write.
func (r *ToolRegistry) Add(spec ToolSpec) error {
	if spec.Name == "" {
		return errors.New("tool name required")
	}
	if spec.Handler == nil {
		return fmt.Errorf("tool %s: handler required", spec.Name)
	}
	switch spec.Safety {
	case "":
		spec.Safety = SafetyWrite
	case SafetyReadOnly, SafetyWrite, SafetyRiskyWrite, SafetyDestructive:
	default:
		return fmt.Errorf("tool %s: unknown safety class %q", spec.Name, spec.Safety)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[spec.Name]; exists || slices.Contains(r.filtered, spec.Name) {
		return fmt.Errorf("tool already registered: %s", spec.Name)
	}
	if !SafetyAllows(r.cfg, spec) {
		r.filtered = append(r.filtered, spec.Name)
		return nil
	}
	r.tools[spec.Name] = spec
	return nil
}

func (r *ToolRegistry) List() []ToolInfo {
	specs := r.Specs()
	infos := make([]ToolInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, ToolInfo{
			Name:        spec.Name,
			Description: spec.Description,
			ToolsetID:   spec.ToolsetID,
			Safety:      spec.Safety,
			InputSchema: spec.InputSchema,
		})
	}
	return infos
}

func (r *ToolRegistry) Get(name string) (ToolSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.tools[name]
	return spec, ok
}

func (r *ToolRegistry) Specs() []ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]ToolSpec, 0, len(r.tools))
	for _, tool := range r.tools {
		specs = append(specs, tool)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
	return specs
}

func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filtered lists the tools dropped by the safety settings, sorted.
func (r *ToolRegistry) Filtered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Clone(r.filtered)
	sort.Strings(names)
	return names
}

// SafetyAllows reports whether cfg lets spec be served. read_only admits
// only read-only tools; disable_destructive hides destructive and risky
// writes unless they are listed in safety.allow_destructive_tools.
func SafetyAllows(cfg *config.Config, spec ToolSpec) bool {
	if cfg == nil {
		return true
	}
	if cfg.ReadOnly {
		return spec.Safety == SafetyReadOnly
	}
	if cfg.DisableDestructive && (spec.Safety == SafetyDestructive || spec.Safety == SafetyRiskyWrite) {
		return slices.Contains(cfg.Safety.AllowDestructiveTools, spec.Name)
	}
	return true
}
