package redact

import (
	"regexp"
)

var (
	// AWS access key ids (long-term and temporary).
	accessKeyPattern = regexp.MustCompile(`\b(?:AKIA|ASIA|AGPA|AIDA|AROA|ANPA|ANVA)[A-Z0-9]{16}\b`)
	// Values following secret-ish keys, e.g. "aws_secret_access_key=..." or "Signature: ...".
	secretValuePattern = regexp.MustCompile(`(?i)((?:aws_)?secret(?:[_-]?access)?(?:[_-]?key)?|session[_-]?token|x-amz-security-token|signature)(["']?\s*[:=]\s*["']?)([^\s"',;]+)`)
	// JWT-shaped tokens.
	jwtPattern = regexp.MustCompile(`eyJ[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+`)
)

const placeholder = "[REDACTED]"

type Redactor struct{}

func New() *Redactor {
	return &Redactor{}
}

func (r *Redactor) RedactString(input string) string {
	out := accessKeyPattern.ReplaceAllString(input, placeholder)
	out = secretValuePattern.ReplaceAllString(out, "${1}${2}"+placeholder)
	return jwtPattern.ReplaceAllString(out, placeholder)
}

func (r *Redactor) RedactMap(input map[string]any) map[string]any {
	output := map[string]any{}
	for k, v := range input {
		output[k] = r.RedactValue(v)
	}
	return output
}

func (r *Redactor) RedactValue(input any) any {
	if r == nil {
		return input
	}
	switch v := input.(type) {
	case string:
		return r.RedactString(v)
	case map[string]any:
		return r.RedactMap(v)
	case map[string]string:
		output := make(map[string]string, len(v))
		for k, item := range v {
			output[k] = r.RedactString(item)
		}
		return output
	case []any:
		redacted := make([]any, 0, len(v))
		for _, item := range v {
			redacted = append(redacted, r.RedactValue(item))
		}
		return redacted
	default:
		return input
	}
}
