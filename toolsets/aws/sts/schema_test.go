package awssts

import (
	"testing"

	"clouddirmcp/internal/mcp"
)

func TestSTSSchemas(t *testing.T) {
	schema := schemaSTSGetCallerIdentity()
	if schema["type"] != "object" {
		t.Fatalf("schema missing type")
	}
	props, _ := schema["properties"].(map[string]any)
	for _, selector := range []string{"region", "key", "keyid", "profile"} {
		if _, ok := props[selector]; !ok {
			t.Fatalf("schema missing %s", selector)
		}
	}
}

func TestSTSToolSpecs(t *testing.T) {
	specs := ToolSpecs(mcp.ToolsetContext{}, "aws", nil)
	if len(specs) != 1 || specs[0].Name != "aws.sts.get_caller_identity" {
		t.Fatalf("unexpected sts tool specs: %#v", specs)
	}
	if specs[0].Safety != mcp.SafetyReadOnly {
		t.Fatalf("expected read-only safety")
	}
}
