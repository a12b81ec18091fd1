package awssts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awslib "clouddirmcp/internal/aws"
	"clouddirmcp/internal/mcp"
	awscd "clouddirmcp/toolsets/aws/clouddirectory"
)

type ClientFunc func(context.Context, awslib.ConnectionParams) (*sts.Client, string, error)

type Service struct {
	ctx       mcp.ToolsetContext
	stsClient ClientFunc
	formatErr awscd.ErrorFormatter
	toolsetID string
}

func ToolSpecs(ctx mcp.ToolsetContext, toolsetID string, stsClient ClientFunc) []mcp.ToolSpec {
	svc := &Service{
		ctx:       ctx,
		stsClient: stsClient,
		formatErr: awscd.RedactingFormatter(ctx.Redactor, awscd.FormatProviderError),
		toolsetID: toolsetID,
	}
	return []mcp.ToolSpec{
		{
			Name:        "aws.sts.get_caller_identity",
			Description: "Show the account and identity a set of connection selectors resolves to.",
			ToolsetID:   toolsetID,
			InputSchema: schemaSTSGetCallerIdentity(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     svc.handleGetCallerIdentity,
		},
	}
}

func (s *Service) handleGetCallerIdentity(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	params, err := awscd.ConnectionArguments("GetCallerIdentity", req.Arguments)
	if err != nil {
		return errorResult(err), err
	}
	client, usedRegion, err := s.stsClient(ctx, params)
	if err != nil {
		err = &awscd.ConnectionError{Err: err}
		return errorResult(err), err
	}
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		if desc, ok := s.formatErr("GetCallerIdentity", err); ok {
			return mcp.ToolResult{
				Data:     map[string]any{"error": desc},
				IsError:  true,
				Metadata: mcp.ToolMetadata{Region: usedRegion},
			}, nil
		}
		return errorResult(err), err
	}
	return mcp.ToolResult{
		Data: s.ctx.Redactor.RedactValue(map[string]any{
			"region":  usedRegion,
			"arn":     aws.ToString(out.Arn),
			"account": aws.ToString(out.Account),
			"userId":  aws.ToString(out.UserId),
		}),
		Metadata: mcp.ToolMetadata{Region: usedRegion, Resources: []string{aws.ToString(out.Arn)}},
	}, nil
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}
