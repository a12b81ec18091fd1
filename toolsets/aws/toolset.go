package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/clouddirectory"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awslib "clouddirmcp/internal/aws"
	"clouddirmcp/internal/mcp"
	awscd "clouddirmcp/toolsets/aws/clouddirectory"
	awssts "clouddirmcp/toolsets/aws/sts"
)

type Toolset struct {
	ctx        mcp.ToolsetContext
	dispatcher *awscd.Dispatcher
}

func New() *Toolset {
	return &Toolset{}
}

func init() {
	mcp.MustRegisterToolset("aws", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "aws"
}

func (t *Toolset) Version() string {
	return "0.1.0"
}

func (t *Toolset) Init(ctx mcp.ToolsetContext) error {
	t.ctx = ctx
	t.dispatcher = awscd.NewDispatcher(
		awscd.ConnectorFunc(t.clouddirectoryClient),
		awscd.WithDefaults(t.defaults()),
		awscd.WithErrorFormatter(awscd.RedactingFormatter(ctx.Redactor, awscd.FormatProviderError)),
		awscd.WithLogger(log.Log),
	)
	if ctx.Services != nil {
		if err := ctx.Services.Register(awscd.ServiceName, t.dispatcher); err != nil {
			return fmt.Errorf("register %s service: %w", awscd.ServiceName, err)
		}
	}
	return nil
}

func (t *Toolset) Register(reg mcp.Registry) error {
	for _, tool := range awscd.ToolSpecs(t.ctx, t.ID(), t.dispatcher) {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	for _, tool := range awssts.ToolSpecs(t.ctx, t.ID(), t.stsClient) {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}

// clouddirectoryClient builds a new client for every call. params already
// carry the server defaults.
func (t *Toolset) clouddirectoryClient(ctx context.Context, params awslib.ConnectionParams) (awscd.API, string, error) {
	cfg, err := awslib.LoadConfig(ctx, params)
	if err != nil {
		return nil, "", err
	}
	var optFns []func(*clouddirectory.Options)
	if endpoint := t.endpoint(); endpoint != "" {
		optFns = append(optFns, func(o *clouddirectory.Options) {
			o.BaseEndpoint = sdkaws.String(endpoint)
		})
	}
	return clouddirectory.NewFromConfig(cfg, optFns...), strings.TrimSpace(cfg.Region), nil
}

func (t *Toolset) stsClient(ctx context.Context, params awslib.ConnectionParams) (*sts.Client, string, error) {
	cfg, err := awslib.LoadConfig(ctx, params.WithDefaults(t.defaults()))
	if err != nil {
		return nil, "", err
	}
	var optFns []func(*sts.Options)
	if endpoint := t.endpoint(); endpoint != "" {
		optFns = append(optFns, func(o *sts.Options) {
			o.BaseEndpoint = sdkaws.String(endpoint)
		})
	}
	return sts.NewFromConfig(cfg, optFns...), strings.TrimSpace(cfg.Region), nil
}

func (t *Toolset) defaults() awslib.ConnectionParams {
	if t.ctx.Config == nil {
		return awslib.ConnectionParams{}
	}
	return awslib.ConnectionParams{
		Region:  t.ctx.Config.AWS.Region,
		Profile: t.ctx.Config.AWS.Profile,
	}
}

func (t *Toolset) endpoint() string {
	if t.ctx.Config == nil {
		return ""
	}
	return strings.TrimSpace(t.ctx.Config.AWS.Endpoint)
}
