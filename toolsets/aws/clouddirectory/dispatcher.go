package awsclouddirectory

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/clouddirectory"

	awslib "clouddirmcp/internal/aws"
)

const (
	opCreateSchema              = "CreateSchema"
	opPublishSchema             = "PublishSchema"
	opCreateDirectory           = "CreateDirectory"
	opPutSchemaFromJSON         = "PutSchemaFromJson"
	opDeleteSchema              = "DeleteSchema"
	opListDevelopmentSchemaArns = "ListDevelopmentSchemaArns"
	opListPublishedSchemaArns   = "ListPublishedSchemaArns"
)

// API is the part of the Cloud Directory client the dispatcher calls.
type API interface {
	CreateSchema(ctx context.Context, params *clouddirectory.CreateSchemaInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.CreateSchemaOutput, error)
	PublishSchema(ctx context.Context, params *clouddirectory.PublishSchemaInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.PublishSchemaOutput, error)
	CreateDirectory(ctx context.Context, params *clouddirectory.CreateDirectoryInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.CreateDirectoryOutput, error)
	PutSchemaFromJson(ctx context.Context, params *clouddirectory.PutSchemaFromJsonInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.PutSchemaFromJsonOutput, error)
	DeleteSchema(ctx context.Context, params *clouddirectory.DeleteSchemaInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.DeleteSchemaOutput, error)
	ListDevelopmentSchemaArns(ctx context.Context, params *clouddirectory.ListDevelopmentSchemaArnsInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.ListDevelopmentSchemaArnsOutput, error)
	ListPublishedSchemaArns(ctx context.Context, params *clouddirectory.ListPublishedSchemaArnsInput, optFns ...func(*clouddirectory.Options)) (*clouddirectory.ListPublishedSchemaArnsOutput, error)
}

var _ API = (*clouddirectory.Client)(nil)

// ConnectionFactory builds a fresh client for one call and reports the
// region it resolved to.
type ConnectionFactory interface {
	Connect(ctx context.Context, params awslib.ConnectionParams) (API, string, error)
}

type ConnectorFunc func(ctx context.Context, params awslib.ConnectionParams) (API, string, error)

func (f ConnectorFunc) Connect(ctx context.Context, params awslib.ConnectionParams) (API, string, error) {
	return f(ctx, params)
}

// Dispatcher runs Cloud Directory operations. Every call resolves its own
// connection; nothing is cached between calls.
type Dispatcher struct {
	connect   ConnectionFactory
	formatErr ErrorFormatter
	documents DocumentReader
	defaults  awslib.ConnectionParams
	logger    log.Interface
}

type Option func(*Dispatcher)

func WithErrorFormatter(f ErrorFormatter) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.formatErr = f
		}
	}
}

func WithDocumentReader(r DocumentReader) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.documents = r
		}
	}
}

// WithDefaults sets the connection parameters used for fields a caller
// leaves empty.
func WithDefaults(params awslib.ConnectionParams) Option {
	return func(d *Dispatcher) {
		d.defaults = params
	}
}

func WithLogger(logger log.Interface) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func NewDispatcher(connect ConnectionFactory, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		connect:   connect,
		formatErr: FormatProviderError,
		documents: NewOSDocumentReader(),
		logger:    log.Log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateSchema creates a development schema and returns its ARN.
func (d *Dispatcher) CreateSchema(ctx context.Context, conn awslib.ConnectionParams, name string) (Result[string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[string]{}, err
	}
	if err := required(opCreateSchema, "name", name); err != nil {
		return Result[string]{}, err
	}
	d.trace(opCreateSchema, region)
	out, err := client.CreateSchema(ctx, &clouddirectory.CreateSchemaInput{Name: aws.String(name)})
	if err != nil {
		return providerResult[string](d, opCreateSchema, region, err)
	}
	return Result[string]{Value: aws.ToString(out.SchemaArn), Region: region}, nil
}

// PublishSchema publishes the development schema arn under version and
// returns the published schema ARN.
func (d *Dispatcher) PublishSchema(ctx context.Context, conn awslib.ConnectionParams, arn, version string) (Result[string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[string]{}, err
	}
	if err := required(opPublishSchema, "arn", arn); err != nil {
		return Result[string]{}, err
	}
	if err := required(opPublishSchema, "version", version); err != nil {
		return Result[string]{}, err
	}
	d.trace(opPublishSchema, region)
	out, err := client.PublishSchema(ctx, &clouddirectory.PublishSchemaInput{
		DevelopmentSchemaArn: aws.String(arn),
		Version:              aws.String(version),
	})
	if err != nil {
		return providerResult[string](d, opPublishSchema, region, err)
	}
	return Result[string]{Value: aws.ToString(out.PublishedSchemaArn), Region: region}, nil
}

// CreateDirectory creates a directory named name from the published schema
// arn and returns the directory ARN.
func (d *Dispatcher) CreateDirectory(ctx context.Context, conn awslib.ConnectionParams, name, arn string) (Result[string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[string]{}, err
	}
	if err := required(opCreateDirectory, "name", name); err != nil {
		return Result[string]{}, err
	}
	if err := required(opCreateDirectory, "arn", arn); err != nil {
		return Result[string]{}, err
	}
	d.trace(opCreateDirectory, region)
	out, err := client.CreateDirectory(ctx, &clouddirectory.CreateDirectoryInput{
		Name:      aws.String(name),
		SchemaArn: aws.String(arn),
	})
	if err != nil {
		return providerResult[string](d, opCreateDirectory, region, err)
	}
	return Result[string]{Value: aws.ToString(out.DirectoryArn), Region: region}, nil
}

// PutSchemaFromJSON replaces the schema arn with the JSON document stored at
// documentPath. A document that cannot be read yields a *DocumentError.
func (d *Dispatcher) PutSchemaFromJSON(ctx context.Context, conn awslib.ConnectionParams, arn, documentPath string) (Result[string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[string]{}, err
	}
	if err := required(opPutSchemaFromJSON, "arn", arn); err != nil {
		return Result[string]{}, err
	}
	if err := required(opPutSchemaFromJSON, "document", documentPath); err != nil {
		return Result[string]{}, err
	}
	document, err := d.documents.ReadDocument(documentPath)
	if err != nil {
		return Result[string]{}, &DocumentError{Path: documentPath, Err: err}
	}
	d.trace(opPutSchemaFromJSON, region)
	out, err := client.PutSchemaFromJson(ctx, &clouddirectory.PutSchemaFromJsonInput{
		SchemaArn: aws.String(arn),
		Document:  aws.String(string(document)),
	})
	if err != nil {
		return providerResult[string](d, opPutSchemaFromJSON, region, err)
	}
	return Result[string]{Value: aws.ToString(out.Arn), Region: region}, nil
}

// DeleteSchema deletes the schema arn and echoes arn back on success.
func (d *Dispatcher) DeleteSchema(ctx context.Context, conn awslib.ConnectionParams, arn string) (Result[string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[string]{}, err
	}
	if err := required(opDeleteSchema, "arn", arn); err != nil {
		return Result[string]{}, err
	}
	d.trace(opDeleteSchema, region)
	if _, err := client.DeleteSchema(ctx, &clouddirectory.DeleteSchemaInput{SchemaArn: aws.String(arn)}); err != nil {
		return providerResult[string](d, opDeleteSchema, region, err)
	}
	return Result[string]{Value: arn, Region: region}, nil
}

// ListDevelopmentSchemaArns returns the first page of development schema
// ARNs. The slice is empty, never nil, when there are none.
func (d *Dispatcher) ListDevelopmentSchemaArns(ctx context.Context, conn awslib.ConnectionParams) (Result[[]string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[[]string]{}, err
	}
	d.trace(opListDevelopmentSchemaArns, region)
	out, err := client.ListDevelopmentSchemaArns(ctx, &clouddirectory.ListDevelopmentSchemaArnsInput{})
	if err != nil {
		return providerResult[[]string](d, opListDevelopmentSchemaArns, region, err)
	}
	return Result[[]string]{Value: nonNil(out.SchemaArns), Region: region}, nil
}

// ListPublishedSchemaArns returns the first page of published schema ARNs.
func (d *Dispatcher) ListPublishedSchemaArns(ctx context.Context, conn awslib.ConnectionParams) (Result[[]string], error) {
	client, region, err := d.connection(ctx, conn)
	if err != nil {
		return Result[[]string]{}, err
	}
	d.trace(opListPublishedSchemaArns, region)
	out, err := client.ListPublishedSchemaArns(ctx, &clouddirectory.ListPublishedSchemaArnsInput{})
	if err != nil {
		return providerResult[[]string](d, opListPublishedSchemaArns, region, err)
	}
	return Result[[]string]{Value: nonNil(out.SchemaArns), Region: region}, nil
}

func (d *Dispatcher) connection(ctx context.Context, conn awslib.ConnectionParams) (API, string, error) {
	if d.connect == nil {
		return nil, "", &ConnectionError{Err: fmt.Errorf("no connection factory configured")}
	}
	client, region, err := d.connect.Connect(ctx, conn.WithDefaults(d.defaults))
	if err != nil {
		return nil, "", &ConnectionError{Err: err}
	}
	if client == nil {
		return nil, "", &ConnectionError{Err: fmt.Errorf("connection factory returned no client")}
	}
	return client, region, nil
}

func (d *Dispatcher) trace(operation, region string) {
	d.logger.WithFields(log.Fields{
		"operation": operation,
		"region":    region,
	}).Debug("calling clouddirectory")
}

// providerResult converts a failed remote call. Provider errors become a
// Result value; anything else is returned as an error.
func providerResult[T any](d *Dispatcher, operation, region string, err error) (Result[T], error) {
	if desc, ok := d.formatErr(operation, err); ok {
		d.logger.WithFields(log.Fields{
			"operation": operation,
			"region":    region,
		}).Debug("clouddirectory returned an error")
		return Result[T]{ProviderError: desc, Region: region}, nil
	}
	return Result[T]{}, fmt.Errorf("%s: %w", operation, err)
}

// required rejects empty and whitespace-only values. The caller's value is
// forwarded unchanged.
func required(operation, argument, value string) error {
	if strings.TrimSpace(value) == "" {
		return &InvocationError{Operation: operation, Argument: argument}
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
