package awsclouddirectory

import awslib "clouddirmcp/internal/aws"

func objectSchema(props map[string]any, required ...string) map[string]any {
	properties := awslib.ConnectionProperties()
	for name, prop := range props {
		properties[name] = prop
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func schemaCreateSchema() map[string]any {
	return objectSchema(map[string]any{
		"name": map[string]any{"type": "string"},
	}, "name")
}

func schemaPublishSchema() map[string]any {
	return objectSchema(map[string]any{
		"arn":     map[string]any{"type": "string", "description": "Development schema ARN."},
		"version": map[string]any{"type": []string{"string", "number"}},
	}, "arn", "version")
}

func schemaCreateDirectory() map[string]any {
	return objectSchema(map[string]any{
		"name": map[string]any{"type": "string"},
		"arn":  map[string]any{"type": "string", "description": "Published schema ARN."},
	}, "name", "arn")
}

func schemaPutSchemaFromJSON() map[string]any {
	return objectSchema(map[string]any{
		"arn":      map[string]any{"type": "string", "description": "Development schema ARN."},
		"document": map[string]any{"type": "string", "description": "Path to the JSON schema document."},
	}, "arn", "document")
}

func schemaDeleteSchema() map[string]any {
	return objectSchema(map[string]any{
		"arn": map[string]any{"type": "string"},
	}, "arn")
}

func schemaListSchemaArns() map[string]any {
	return objectSchema(nil)
}
