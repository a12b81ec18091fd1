package awssts

import awslib "clouddirmcp/internal/aws"

// schemaSTSGetCallerIdentity takes only the connection selectors.
func schemaSTSGetCallerIdentity() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": awslib.ConnectionProperties(),
	}
}
