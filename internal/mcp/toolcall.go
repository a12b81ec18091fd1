package mcp

import (
	"context"
	"errors"
	"fmt"

	"clouddirmcp/internal/policy"
)

var ErrNoInvoker = errors.New("tool invoker not available")

// CallTool runs toolName for an already authenticated user.
func (t ToolContext) CallTool(ctx context.Context, user policy.User, toolName string, args map[string]any) (ToolResult, error) {
	if t.Invoker == nil {
		return ToolResult{}, ErrNoInvoker
	}
	return t.Invoker.Call(ctx, user, toolName, args)
}

// CallToolWithKey authenticates apiKey and runs toolName for the resulting
// user. The CLI uses it with an empty key.
func (t ToolContext) CallToolWithKey(ctx context.Context, apiKey, toolName string, args map[string]any) (ToolResult, error) {
	if t.Policy == nil {
		return ToolResult{}, errors.New("policy not configured")
	}
	user, err := t.Policy.Authenticate(apiKey)
	if err != nil {
		return ToolResult{}, fmt.Errorf("authenticate: %w", err)
	}
	return t.CallTool(ctx, user, toolName, args)
}
