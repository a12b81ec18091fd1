package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkjsonrpc "github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"clouddirmcp/internal/audit"
	"clouddirmcp/internal/redact"
)

const (
	codeUnauthenticated = -32001
	codeForbidden       = -32002
)

func RegisterSDKTools(server *sdkmcp.Server, reg *ToolRegistry, ctx ToolContext) ([]string, error) {
	if server == nil || reg == nil {
		return nil, fmt.Errorf("server and registry are required")
	}
	toolNames := reg.Names()
	for _, spec := range reg.Specs() {
		schema := spec.InputSchema
		if schema == nil {
			schema = map[string]any{"type": "object"}
		}
		tool := &sdkmcp.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: schema,
		}
		server.AddTool(tool, toolHandler(spec, ctx))
	}
	return toolNames, nil
}

func toolHandler(spec ToolSpec, ctx ToolContext) sdkmcp.ToolHandler {
	return func(callCtx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		args := map[string]any{}
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			decoded, err := decodeArguments(req.Params.Arguments)
			if err != nil {
				return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: fmt.Sprintf("invalid arguments: %v", err)}
			}
			args = decoded
		}

		apiKey := apiKeyFromRequest(req)
		user, err := ctx.Policy.Authenticate(apiKey)
		if err != nil {
			logAudit(ctx, spec, "unknown", ToolMetadata{}, audit.OutcomeDenied, err)
			return nil, &sdkjsonrpc.Error{Code: codeUnauthenticated, Message: err.Error()}
		}
		if err := ctx.Policy.AuthorizeTool(user, spec.ToolsetID, spec.Name); err != nil {
			logAudit(ctx, spec, user.ID, ToolMetadata{}, audit.OutcomeDenied, err)
			return nil, &sdkjsonrpc.Error{Code: codeForbidden, Message: err.Error()}
		}

		result, toolErr := spec.Handler(callCtx, ToolRequest{Arguments: args, User: user, Context: ctx})
		logAudit(ctx, spec, user.ID, result.Metadata, outcomeOf(result, toolErr), toolErr)

		if toolErr != nil && IsInvalidArgument(toolErr) {
			return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: toolErr.Error()}
		}
		return buildCallToolResult(result, toolErr, ctx.Redactor), nil
	}
}

// decodeArguments keeps numbers as json.Number so handlers see the literal
// text the caller sent.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// buildCallToolResult maps a handler outcome onto the MCP result. Go errors
// become a classified envelope, provider failures keep their {"error": ...}
// shape, and success values are wrapped as {"result": value} unless they
// already are an object.
func buildCallToolResult(result ToolResult, toolErr error, redactor *redact.Redactor) *sdkmcp.CallToolResult {
	res := &sdkmcp.CallToolResult{}
	if result.Metadata.Region != "" || len(result.Metadata.Resources) > 0 {
		res.Meta = sdkmcp.Meta{
			"region":    result.Metadata.Region,
			"resources": result.Metadata.Resources,
		}
	}
	if toolErr != nil {
		msg := toolErr.Error()
		if redactor != nil {
			msg = redactor.RedactString(msg)
		}
		res.IsError = true
		res.StructuredContent = BuildErrorEnvelope(toolErr, result.Data)
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: msg}}
		return res
	}
	if result.IsError {
		res.IsError = true
	}

	if result.Data == nil {
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: "{}"}}
		return res
	}
	if _, ok := result.Data.(map[string]any); ok {
		res.StructuredContent = result.Data
	} else {
		res.StructuredContent = map[string]any{"result": result.Data}
	}
	dataJSON, err := json.Marshal(result.Data)
	if err != nil {
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: fmt.Sprintf("%v", result.Data)}}
	} else {
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: string(dataJSON)}}
	}
	return res
}

func apiKeyFromRequest(req *sdkmcp.CallToolRequest) string {
	if req == nil {
		return ""
	}
	if req.Params != nil {
		if value := apiKeyFromMeta(req.Params.Meta); value != "" {
			return value
		}
	}
	if req.Extra != nil && req.Extra.Header != nil {
		if value := strings.TrimSpace(req.Extra.Header.Get("X-Api-Key")); value != "" {
			return value
		}
		authHeader := strings.TrimSpace(req.Extra.Header.Get("Authorization"))
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			return strings.TrimSpace(authHeader[len("bearer "):])
		}
	}
	return ""
}

func apiKeyFromMeta(meta map[string]any) string {
	if meta == nil {
		return ""
	}
	if value, ok := meta["apiKey"].(string); ok {
		return value
	}
	if auth, ok := meta["auth"].(map[string]any); ok {
		if value, ok := auth["apiKey"].(string); ok {
			return value
		}
	}
	return ""
}

func logAudit(ctx ToolContext, spec ToolSpec, userID string, meta ToolMetadata, outcome audit.Outcome, err error) {
	if ctx.Audit == nil {
		return
	}
	event := audit.Event{
		UserID:    userID,
		Tool:      spec.Name,
		Toolset:   spec.ToolsetID,
		Region:    meta.Region,
		Resources: meta.Resources,
		Outcome:   outcome,
	}
	if err != nil {
		event.Error = err.Error()
		if ctx.Redactor != nil {
			event.Error = ctx.Redactor.RedactString(event.Error)
		}
	}
	ctx.Audit.Log(event)
}
