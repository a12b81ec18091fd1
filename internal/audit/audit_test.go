package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Log(Event{
		Timestamp: time.Unix(1, 0).UTC(),
		UserID:    "user",
		Tool:      "aws.clouddirectory.create_schema",
		Toolset:   "aws",
		Region:    "us-west-2",
		Resources: []string{"arn:aws:clouddirectory:us-west-2:123456789012:schema/development/dev1"},
		Outcome:   OutcomeSuccess,
	})
	output := buf.String()
	if !strings.Contains(output, `"tool":"aws.clouddirectory.create_schema"`) {
		t.Fatalf("expected tool in output: %s", output)
	}
	if !strings.Contains(output, `"region":"us-west-2"`) {
		t.Fatalf("expected region in output: %s", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Fatalf("expected newline")
	}
}

func TestLoggerStampsMissingTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600)) }
	logger.Log(Event{Tool: "aws.clouddirectory.delete_schema", Toolset: "aws", Outcome: OutcomeProviderError, Error: "DeleteSchema: ResourceNotFoundException"})

	var got Event
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Timestamp.Equal(time.Date(2026, 1, 2, 2, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp: %v", got.Timestamp)
	}
	if got.Outcome != OutcomeProviderError || got.Error == "" {
		t.Fatalf("unexpected event: %#v", got)
	}
}

func TestLoggerNilWriter(t *testing.T) {
	logger := NewLogger(nil)
	logger.Log(Event{Tool: "aws.sts.get_caller_identity", Toolset: "aws", Outcome: OutcomeSuccess})
}

func TestLoggerMarshalError(t *testing.T) {
	orig := jsonMarshal
	t.Cleanup(func() { jsonMarshal = orig })
	jsonMarshal = func(any) ([]byte, error) {
		return nil, fmt.Errorf("fail")
	}
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Log(Event{Tool: "aws.sts.get_caller_identity", Toolset: "aws", Outcome: OutcomeDenied})
	if buf.Len() != 0 {
		t.Fatalf("expected no output on marshal error")
	}
}
