package awssts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awslib "clouddirmcp/internal/aws"
	"clouddirmcp/internal/mcp"
	"clouddirmcp/internal/redact"
	awscd "clouddirmcp/toolsets/aws/clouddirectory"
)

func TestSTSHandlerPassesConnectionSelectors(t *testing.T) {
	var got awslib.ConnectionParams
	spec := ToolSpecs(mcp.ToolsetContext{Redactor: redact.New()}, "aws", func(_ context.Context, params awslib.ConnectionParams) (*sts.Client, string, error) {
		got = params
		return nil, "", errors.New("no credentials")
	})[0]
	_, err := spec.Handler(context.Background(), mcp.ToolRequest{Arguments: map[string]any{
		"region":  "eu-west-1",
		"profile": "directory-admin",
		"keyid":   "AKID",
		"key":     "SECRET",
	}})
	var connErr *awscd.ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected connection error, got %v", err)
	}
	want := awslib.ConnectionParams{Region: "eu-west-1", Profile: "directory-admin", KeyID: "AKID", Key: "SECRET"}
	if got != want {
		t.Fatalf("unexpected params: %#v", got)
	}
}

func TestSTSHandlerRejectsNonStringSelector(t *testing.T) {
	called := false
	spec := ToolSpecs(mcp.ToolsetContext{Redactor: redact.New()}, "aws", func(context.Context, awslib.ConnectionParams) (*sts.Client, string, error) {
		called = true
		return nil, "", errors.New("unreachable")
	})[0]
	_, err := spec.Handler(context.Background(), mcp.ToolRequest{Arguments: map[string]any{"region": true}})
	if !mcp.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if err.Error() != "GetCallerIdentity: region must be a string" {
		t.Fatalf("unexpected message: %v", err)
	}
	if called {
		t.Fatalf("client must not be built for a rejected selector")
	}
}

func TestSTSHandlersWithStubbedClient(t *testing.T) {
	responses := map[string]stubResponse{
		"GetCallerIdentity": {status: http.StatusOK, body: `<GetCallerIdentityResponse xmlns="https://sts.amazonaws.com/doc/2011-06-15/">
  <GetCallerIdentityResult>
    <Arn>arn:aws:iam::123456789012:user/directory-admin</Arn>
    <Account>123456789012</Account>
    <UserId>ABC</UserId>
  </GetCallerIdentityResult>
</GetCallerIdentityResponse>`},
	}
	client := newSTSTestClient(t, responses)
	svc := &Service{
		ctx:       mcp.ToolsetContext{Redactor: redact.New()},
		formatErr: awscd.FormatProviderError,
		stsClient: func(context.Context, awslib.ConnectionParams) (*sts.Client, string, error) {
			return client, "us-east-1", nil
		},
	}

	res, err := svc.handleGetCallerIdentity(context.Background(), mcp.ToolRequest{Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("get caller identity: %v", err)
	}
	data, ok := res.Data.(map[string]any)
	if !ok || data["account"] != "123456789012" {
		t.Fatalf("unexpected data: %#v", res.Data)
	}
	if res.Metadata.Region != "us-east-1" {
		t.Fatalf("expected region metadata, got %#v", res.Metadata)
	}
}

func TestSTSHandlerProviderError(t *testing.T) {
	responses := map[string]stubResponse{
		"GetCallerIdentity": {status: http.StatusForbidden, body: `<ErrorResponse xmlns="https://sts.amazonaws.com/doc/2011-06-15/">
  <Error>
    <Type>Sender</Type>
    <Code>InvalidClientTokenId</Code>
    <Message>The security token included in the request is invalid.</Message>
  </Error>
  <RequestId>req-1</RequestId>
</ErrorResponse>`},
	}
	client := newSTSTestClient(t, responses)
	svc := &Service{
		ctx:       mcp.ToolsetContext{Redactor: redact.New()},
		formatErr: awscd.FormatProviderError,
		stsClient: func(context.Context, awslib.ConnectionParams) (*sts.Client, string, error) {
			return client, "us-east-1", nil
		},
	}
	res, err := svc.handleGetCallerIdentity(context.Background(), mcp.ToolRequest{Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("provider errors must be returned as values: %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected provider error result")
	}
	data, _ := res.Data.(map[string]any)
	if data["error"] != "GetCallerIdentity: InvalidClientTokenId: The security token included in the request is invalid." {
		t.Fatalf("unexpected error value: %#v", res.Data)
	}
}

func newSTSTestClient(t *testing.T, responses map[string]stubResponse) *sts.Client {
	t.Helper()
	transport := &stsQueryRoundTripper{responses: responses}
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  &http.Client{Transport: transport},
	}
	return sts.NewFromConfig(cfg, func(o *sts.Options) {
		o.BaseEndpoint = aws.String("https://sts.test")
		o.Retryer = aws.NopRetryer{}
	})
}

type stubResponse struct {
	status int
	body   string
}

type stsQueryRoundTripper struct {
	responses map[string]stubResponse
}

func (rt *stsQueryRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	values, _ := url.ParseQuery(string(body))
	action := values.Get("Action")
	if action == "" {
		action = req.URL.Query().Get("Action")
	}
	resp, ok := rt.responses[action]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader("unknown action")),
			Header:     http.Header{"Content-Type": []string{"text/plain"}},
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(strings.TrimSpace(resp.body))),
		Header:     http.Header{"Content-Type": []string{"text/xml"}},
		Request:    req,
	}, nil
}
