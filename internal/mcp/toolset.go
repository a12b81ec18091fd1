package mcp

// Toolset groups related tools. Init runs once per runtime build and may
// publish shared services; Register adds the toolset's specs.
type Toolset interface {
	ID() string
	Version() string
	Init(ctx ToolsetContext) error
	Register(reg Registry) error
}
