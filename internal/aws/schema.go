package aws

// ConnectionProperties returns the JSON schema properties of the connection
// selectors accepted by every AWS tool. Each call returns a fresh map.
func ConnectionProperties() map[string]any {
	return map[string]any{
		"region":  map[string]any{"type": "string", "description": "AWS region; defaults to the server or environment region."},
		"key":     map[string]any{"type": "string", "description": "Secret access key; used together with keyid."},
		"keyid":   map[string]any{"type": "string", "description": "Access key id; used together with key."},
		"profile": map[string]any{"type": "string", "description": "Named profile from the shared AWS config."},
	}
}
