package mcp

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/aws/smithy-go"
)

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Hint      string `json:"hint,omitempty"`
	Retryable bool   `json:"retryable"`
}

type ErrorEnvelope struct {
	Error   ErrorDetail `json:"error"`
	Details any         `json:"details,omitempty"`
}

// invalidArgument is implemented by errors raised before any remote call
// because a required argument was missing.
type invalidArgument interface {
	InvalidArgument() bool
}

// IsInvalidArgument reports whether err is a caller argument error.
func IsInvalidArgument(err error) bool {
	var target invalidArgument
	return errors.As(err, &target) && target.InvalidArgument()
}

func BuildErrorEnvelope(err error, details any) map[string]any {
	envelope := ErrorEnvelope{Error: classifyError(err)}
	out := map[string]any{"error": envelope.Error}
	if details != nil {
		out["details"] = details
	}
	return out
}

func classifyError(err error) ErrorDetail {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if IsInvalidArgument(err) {
		return ErrorDetail{Code: "invalid_argument", Message: msg, Hint: "Supply every required argument.", Retryable: false}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorDetail{Code: "timeout", Message: msg, Hint: "Check network latency to the AWS endpoint.", Retryable: true}
	}
	if errors.Is(err, context.Canceled) {
		return ErrorDetail{Code: "canceled", Message: msg, Hint: "Request was canceled before completion.", Retryable: true}
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ErrorDetail{Code: "io_error", Message: msg, Hint: "Verify the document path is readable by the server.", Retryable: false}
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation", "UnrecognizedClientException", "InvalidClientTokenId":
			return ErrorDetail{Code: "forbidden", Message: msg, Hint: "Check AWS credentials and IAM policies.", Retryable: false}
		case "Throttling", "ThrottlingException", "RequestLimitExceeded", "TooManyRequestsException", "LimitExceededException":
			return ErrorDetail{Code: "rate_limited", Message: msg, Hint: "Retry with backoff.", Retryable: true}
		case "ResourceNotFoundException", "NotFoundException":
			return ErrorDetail{Code: "not_found", Message: msg, Hint: "Verify resource ARNs and region.", Retryable: false}
		case "ValidationException", "InvalidArnException", "InvalidRuleException", "InvalidSchemaDocException":
			return ErrorDetail{Code: "invalid_request", Message: msg, Hint: "Fix request parameters or schema.", Retryable: false}
		case "SchemaAlreadyExistsException", "SchemaAlreadyPublishedException", "DirectoryAlreadyExistsException", "StillContainsLinksException":
			return ErrorDetail{Code: "conflict", Message: msg, Hint: "Resource state conflicts with the request.", Retryable: false}
		default:
			return ErrorDetail{Code: "upstream_error", Message: msg, Hint: "AWS API error; verify inputs and retry.", Retryable: true}
		}
	}
	if isInvalidRequestMessage(msg) {
		return ErrorDetail{Code: "invalid_request", Message: msg, Hint: "Fix request parameters or schema.", Retryable: false}
	}
	return ErrorDetail{Code: "internal", Message: msg, Hint: "Check server logs for details.", Retryable: false}
}

func isInvalidRequestMessage(msg string) bool {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "required") || strings.Contains(lower, "invalid") || strings.Contains(lower, "missing") {
		return true
	}
	return false
}
