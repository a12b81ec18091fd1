package mcp

import (
	"context"
	"errors"
	"testing"

	"clouddirmcp/internal/config"
	"clouddirmcp/internal/policy"
)

func TestToolContextCallToolMissingInvoker(t *testing.T) {
	ctx := ToolContext{}
	_, err := ctx.CallTool(context.Background(), policy.User{}, "demo", nil)
	if err == nil {
		t.Fatalf("expected error for missing invoker")
	}
}

func TestToolContextCallTool(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := NewRegistry(&cfg)
	_ = reg.Add(ToolSpec{
		Name:      "demo",
		ToolsetID: "core",
		Handler: func(ctx context.Context, req ToolRequest) (ToolResult, error) {
			return ToolResult{Data: map[string]any{"ok": true}}, nil
		},
	})
	toolCtx := ToolContext{Config: &cfg, Policy: policy.NewAuthorizer(), Registry: reg}
	toolCtx.Invoker = NewToolInvoker(reg, toolCtx)

	result, err := toolCtx.CallTool(context.Background(), policy.User{Role: policy.RoleOperator}, "demo", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	data, ok := result.Data.(map[string]any)
	if !ok || data["ok"] != true {
		t.Fatalf("unexpected tool result: %#v", result.Data)
	}
}

func TestToolContextCallToolWithKey(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := NewRegistry(&cfg)
	var gotUser string
	_ = reg.Add(ToolSpec{
		Name:      "demo",
		ToolsetID: "core",
		Handler: func(ctx context.Context, req ToolRequest) (ToolResult, error) {
			gotUser = req.User.ID
			return ToolResult{Data: "ok"}, nil
		},
	})
	toolCtx := ToolContext{Config: &cfg, Policy: policy.NewAuthorizer(), Registry: reg}
	toolCtx.Invoker = NewToolInvoker(reg, toolCtx)

	result, err := toolCtx.CallToolWithKey(context.Background(), "", "demo", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.Data != "ok" || gotUser != "local" {
		t.Fatalf("unexpected result %#v for user %q", result.Data, gotUser)
	}

	if _, err := (ToolContext{}).CallToolWithKey(context.Background(), "", "demo", nil); err == nil {
		t.Fatalf("expected error without policy")
	}
	if _, err := (ToolContext{Policy: policy.NewAuthorizer()}).CallToolWithKey(context.Background(), "", "demo", nil); !errors.Is(err, ErrNoInvoker) {
		t.Fatalf("expected ErrNoInvoker, got %v", err)
	}
}
