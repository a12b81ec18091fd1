package sdk

import (
	awslib "clouddirmcp/internal/aws"
	"clouddirmcp/internal/mcp"
	"clouddirmcp/internal/policy"
	"clouddirmcp/internal/redact"
	awscd "clouddirmcp/toolsets/aws/clouddirectory"
)

// Core toolset interfaces and types.
type Toolset = mcp.Toolset

type ToolsetContext = mcp.ToolsetContext

type ToolSpec = mcp.ToolSpec

type ToolHandler = mcp.ToolHandler

type ToolSafety = mcp.ToolSafety

type ToolRequest = mcp.ToolRequest

type ToolResult = mcp.ToolResult

type ToolMetadata = mcp.ToolMetadata

type Registry = mcp.Registry

const (
	SafetyReadOnly    = mcp.SafetyReadOnly
	SafetyWrite       = mcp.SafetyWrite
	SafetyRiskyWrite  = mcp.SafetyRiskyWrite
	SafetyDestructive = mcp.SafetyDestructive
)

// Toolset registration for plugin discovery.
func RegisterToolset(id string, factory mcp.ToolsetFactory) error {
	return mcp.RegisterToolset(id, factory)
}

func MustRegisterToolset(id string, factory mcp.ToolsetFactory) {
	mcp.MustRegisterToolset(id, factory)
}

func RegisteredToolsets() []string {
	return mcp.RegisteredToolsets()
}

// Shared services and invoker.
type ServiceRegistry = mcp.ServiceRegistry

type ToolInvoker = mcp.ToolInvoker

type Redactor = redact.Redactor

// Cloud Directory dispatch. Toolsets that wrap the directory tools look the
// dispatcher up under DirectoryService.
const DirectoryService = awscd.ServiceName

type Dispatcher = awscd.Dispatcher

type ConnectionParams = awslib.ConnectionParams

type ErrorFormatter = awscd.ErrorFormatter

type InvocationError = awscd.InvocationError

var ErrInvalidArgument = awscd.ErrInvalidArgument

// DispatcherFrom returns the dispatcher published by the aws toolset.
func DispatcherFrom(services *ServiceRegistry) (*Dispatcher, bool) {
	dispatcher, err := mcp.LookupService[*Dispatcher](services, DirectoryService)
	return dispatcher, err == nil
}

// Policy helpers.
type User = policy.User

type Role = policy.Role

const RoleOperator = policy.RoleOperator
