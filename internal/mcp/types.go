package mcp

import (
	"context"

	"clouddirmcp/internal/audit"
	"clouddirmcp/internal/config"
	"clouddirmcp/internal/policy"
	"clouddirmcp/internal/redact"
)

type ToolSafety string

const (
	SafetyReadOnly    ToolSafety = "read_only"
	SafetyWrite       ToolSafety = "write"
	SafetyRiskyWrite  ToolSafety = "risky_write"
	SafetyDestructive ToolSafety = "destructive"
)

type ToolHandler func(ctx context.Context, req ToolRequest) (ToolResult, error)

type ToolSpec struct {
	Name        string
	Description string
	ToolsetID   string
	InputSchema map[string]any
	Safety      ToolSafety
	Handler     ToolHandler
}

// ToolInfo is the listing form of a ToolSpec.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ToolsetID   string         `json:"toolset"`
	Safety      ToolSafety     `json:"safety"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ToolRequest struct {
	Arguments map[string]any
	User      policy.User
	Context   ToolContext
}

// ToolResult is the value returned to the caller. IsError marks Data as a
// normalized provider failure such as {"error": "..."}; it is still a value,
// not a Go error.
type ToolResult struct {
	Data     any
	IsError  bool
	Metadata ToolMetadata
}

// ToolMetadata feeds the audit log and the MCP result _meta.
type ToolMetadata struct {
	Region    string   `json:"region,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// ToolContext is shared by every tool of one runtime build.
type ToolContext struct {
	Config   *config.Config
	Policy   *policy.Authorizer
	Redactor *redact.Redactor
	Audit    *audit.Logger
	Services *ServiceRegistry
	Invoker  *ToolInvoker
	Registry Registry
}

type ToolsetContext = ToolContext
