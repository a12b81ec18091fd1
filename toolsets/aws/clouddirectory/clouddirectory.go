package awsclouddirectory

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	awslib "clouddirmcp/internal/aws"
	"clouddirmcp/internal/mcp"
)

// ServiceName is the key under which the dispatcher is published in the
// service registry.
const ServiceName = "aws.clouddirectory"

type Service struct {
	ctx        mcp.ToolsetContext
	dispatcher *Dispatcher
	toolsetID  string
}

func ToolSpecs(ctx mcp.ToolsetContext, toolsetID string, dispatcher *Dispatcher) []mcp.ToolSpec {
	svc := &Service{ctx: ctx, dispatcher: dispatcher, toolsetID: toolsetID}
	return []mcp.ToolSpec{
		{
			Name:        "aws.clouddirectory.create_schema",
			Description: "Create a development schema and return its ARN.",
			ToolsetID:   toolsetID,
			InputSchema: schemaCreateSchema(),
			Safety:      mcp.SafetyWrite,
			Handler:     svc.handleCreateSchema,
		},
		{
			Name:        "aws.clouddirectory.publish_schema",
			Description: "Publish a development schema under a version and return the published schema ARN.",
			ToolsetID:   toolsetID,
			InputSchema: schemaPublishSchema(),
			Safety:      mcp.SafetyWrite,
			Handler:     svc.handlePublishSchema,
		},
		{
			Name:        "aws.clouddirectory.create_directory",
			Description: "Create a directory from a published schema and return the directory ARN.",
			ToolsetID:   toolsetID,
			InputSchema: schemaCreateDirectory(),
			Safety:      mcp.SafetyWrite,
			Handler:     svc.handleCreateDirectory,
		},
		{
			Name:        "aws.clouddirectory.put_schema_from_json",
			Description: "Replace a development schema with a JSON document read from a local path.",
			ToolsetID:   toolsetID,
			InputSchema: schemaPutSchemaFromJSON(),
			Safety:      mcp.SafetyRiskyWrite,
			Handler:     svc.handlePutSchemaFromJSON,
		},
		{
			Name:        "aws.clouddirectory.delete_schema",
			Description: "Delete a development or published schema.",
			ToolsetID:   toolsetID,
			InputSchema: schemaDeleteSchema(),
			Safety:      mcp.SafetyDestructive,
			Handler:     svc.handleDeleteSchema,
		},
		{
			Name:        "aws.clouddirectory.list_development_schema_arns",
			Description: "List development schema ARNs.",
			ToolsetID:   toolsetID,
			InputSchema: schemaListSchemaArns(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     svc.handleListDevelopmentSchemaArns,
		},
		{
			Name:        "aws.clouddirectory.list_published_schema_arns",
			Description: "List published schema ARNs.",
			ToolsetID:   toolsetID,
			InputSchema: schemaListSchemaArns(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     svc.handleListPublishedSchemaArns,
		},
	}
}

func (s *Service) handleCreateSchema(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opCreateSchema, req.Arguments)
	conn, name := args.connection(), args.str("name")
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.CreateSchema(ctx, conn, name)
	return toolResult(res, err)
}

func (s *Service) handlePublishSchema(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opPublishSchema, req.Arguments)
	conn, arn, version := args.connection(), args.str("arn"), args.str("version")
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.PublishSchema(ctx, conn, arn, version)
	return toolResult(res, err, arn)
}

func (s *Service) handleCreateDirectory(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opCreateDirectory, req.Arguments)
	conn, name, arn := args.connection(), args.str("name"), args.str("arn")
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.CreateDirectory(ctx, conn, name, arn)
	return toolResult(res, err, arn)
}

func (s *Service) handlePutSchemaFromJSON(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opPutSchemaFromJSON, req.Arguments)
	conn, arn, document := args.connection(), args.str("arn"), args.str("document")
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.PutSchemaFromJSON(ctx, conn, arn, document)
	return toolResult(res, err, arn)
}

func (s *Service) handleDeleteSchema(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opDeleteSchema, req.Arguments)
	conn, arn := args.connection(), args.str("arn")
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.DeleteSchema(ctx, conn, arn)
	return toolResult(res, err)
}

func (s *Service) handleListDevelopmentSchemaArns(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opListDevelopmentSchemaArns, req.Arguments)
	conn := args.connection()
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.ListDevelopmentSchemaArns(ctx, conn)
	return toolResult(res, err)
}

func (s *Service) handleListPublishedSchemaArns(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	args := newArguments(opListPublishedSchemaArns, req.Arguments)
	conn := args.connection()
	if err := args.Err(); err != nil {
		return errorResult(err), err
	}
	res, err := s.dispatcher.ListPublishedSchemaArns(ctx, conn)
	return toolResult(res, err)
}

// toolResult maps a dispatcher outcome onto a tool result. inputs are ARNs
// the call acted on; a successful string result is added to them.
func toolResult[T any](res Result[T], err error, inputs ...string) (mcp.ToolResult, error) {
	if err != nil {
		return errorResult(err), err
	}
	resources := make([]string, 0, len(inputs)+1)
	for _, arn := range inputs {
		if arn = strings.TrimSpace(arn); arn != "" {
			resources = append(resources, arn)
		}
	}
	if value, ok := any(res.Value).(string); ok && value != "" && !res.Failed() {
		resources = append(resources, value)
	}
	return mcp.ToolResult{
		Data:     res.Payload(),
		IsError:  res.Failed(),
		Metadata: mcp.ToolMetadata{Region: res.Region, Resources: resources},
	}, nil
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}

// arguments reads tool arguments as strings. Numbers keep their literal
// text; any other JSON type is recorded as the first error.
type arguments struct {
	operation string
	values    map[string]any
	err       error
}

func newArguments(operation string, values map[string]any) *arguments {
	return &arguments{operation: operation, values: values}
}

func (a *arguments) str(name string) string {
	value, ok := toString(a.values[name])
	if !ok && a.err == nil {
		a.err = &InvocationError{Operation: a.operation, Argument: name, Reason: "must be a string"}
	}
	return value
}

func (a *arguments) connection() awslib.ConnectionParams {
	return awslib.ConnectionParams{
		Region:  a.str("region"),
		Key:     a.str("key"),
		KeyID:   a.str("keyid"),
		Profile: a.str("profile"),
	}
}

func (a *arguments) Err() error {
	return a.err
}

// ConnectionArguments reads the connection selectors shared by every AWS
// tool. A selector that is neither a string nor a number is an
// *InvocationError.
func ConnectionArguments(operation string, values map[string]any) (awslib.ConnectionParams, error) {
	args := newArguments(operation, values)
	conn := args.connection()
	return conn, args.Err()
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
