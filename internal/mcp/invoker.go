package mcp

import (
	"context"
	"errors"

	"clouddirmcp/internal/audit"
	"clouddirmcp/internal/policy"
)

// ToolInvoker runs registered tools outside an MCP session, e.g. from the
// CLI call command.
type ToolInvoker struct {
	reg *ToolRegistry
	ctx ToolContext
}

func NewToolInvoker(reg *ToolRegistry, ctx ToolContext) *ToolInvoker {
	return &ToolInvoker{reg: reg, ctx: ctx}
}

func (i *ToolInvoker) Call(ctx context.Context, user policy.User, toolName string, args map[string]any) (ToolResult, error) {
	if i == nil || i.reg == nil {
		return ToolResult{Data: map[string]any{"error": "tool registry not available"}}, errors.New("tool registry not available")
	}
	spec, ok := i.reg.Get(toolName)
	if !ok {
		return ToolResult{Data: map[string]any{"error": "tool not found"}}, errors.New("tool not found: " + toolName)
	}
	if i.ctx.Policy != nil {
		if err := i.ctx.Policy.AuthorizeTool(user, spec.ToolsetID, spec.Name); err != nil {
			logAudit(i.ctx, spec, user.ID, ToolMetadata{}, audit.OutcomeDenied, err)
			return ToolResult{Data: map[string]any{"error": err.Error()}}, err
		}
	}
	if args == nil {
		args = map[string]any{}
	}
	result, toolErr := spec.Handler(ctx, ToolRequest{Arguments: args, User: user, Context: i.ctx})
	logAudit(i.ctx, spec, user.ID, result.Metadata, outcomeOf(result, toolErr), toolErr)
	return result, toolErr
}

func outcomeOf(result ToolResult, err error) audit.Outcome {
	switch {
	case err != nil:
		return audit.OutcomeError
	case result.IsError:
		return audit.OutcomeProviderError
	default:
		return audit.OutcomeSuccess
	}
}
