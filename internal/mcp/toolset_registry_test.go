package mcp

import "testing"

type namedToolset struct {
	id string
}

func (t namedToolset) ID() string                  { return t.id }
func (t namedToolset) Version() string             { return "0.0.0" }
func (t namedToolset) Init(ToolsetContext) error   { return nil }
func (t namedToolset) Register(reg Registry) error { return nil }

func resetToolsetCatalog() {
	catalog = toolsetCatalog{factories: map[string]ToolsetFactory{}}
}

func TestRegisterToolsetErrors(t *testing.T) {
	resetToolsetCatalog()
	if err := RegisterToolset("", func() Toolset { return nil }); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if err := RegisterToolset("Bad ID", func() Toolset { return nil }); err == nil {
		t.Fatalf("expected error for invalid id")
	}
	if err := RegisterToolset("demo", nil); err == nil {
		t.Fatalf("expected error for nil factory")
	}
	if err := RegisterToolset("demo", func() Toolset { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := RegisterToolset("demo", func() Toolset { return nil }); err == nil {
		t.Fatalf("expected error for duplicate registration")
	}
}

func TestMustRegisterToolsetPanics(t *testing.T) {
	resetToolsetCatalog()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic from MustRegisterToolset")
		}
	}()
	MustRegisterToolset("", func() Toolset { return nil })
}

func TestToolsetFactoryForAndRegisteredToolsets(t *testing.T) {
	resetToolsetCatalog()
	MustRegisterToolset("b", func() Toolset { return nil })
	MustRegisterToolset("a", func() Toolset { return nil })
	if _, ok := ToolsetFactoryFor("missing"); ok {
		t.Fatalf("expected missing toolset")
	}
	if _, ok := ToolsetFactoryFor("a"); !ok {
		t.Fatalf("expected toolset factory")
	}
	ids := RegisteredToolsets()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected toolset ids: %#v", ids)
	}
}

func TestNewToolsets(t *testing.T) {
	resetToolsetCatalog()
	MustRegisterToolset("aws", func() Toolset { return namedToolset{id: "aws"} })
	MustRegisterToolset("extra", func() Toolset { return namedToolset{id: "extra"} })
	MustRegisterToolset("broken", func() Toolset { return nil })

	toolsets, err := NewToolsets([]string{"extra", "aws", "extra"})
	if err != nil {
		t.Fatalf("new toolsets: %v", err)
	}
	if len(toolsets) != 2 || toolsets[0].ID() != "extra" || toolsets[1].ID() != "aws" {
		t.Fatalf("unexpected toolsets: %#v", toolsets)
	}
	if _, err := NewToolsets([]string{"aws", "missing"}); err == nil {
		t.Fatalf("expected error for unknown toolset")
	}
	if _, err := NewToolsets([]string{"broken"}); err == nil {
		t.Fatalf("expected error for nil toolset")
	}
}
