package policy

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleOperator Role = "operator"
)

type User struct {
	ID   string
	Role Role
}

// Authorizer gates tool calls. An empty allowlist permits every registered
// tool; entries ending in ".*" match a tool-name prefix.
type Authorizer struct {
	allowedTools []string
}

func NewAuthorizer(allowedTools ...string) *Authorizer {
	var allowed []string
	for _, tool := range allowedTools {
		if trimmed := strings.TrimSpace(tool); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}
	return &Authorizer{allowedTools: allowed}
}

func (a *Authorizer) Authenticate(apiKey string) (User, error) {
	_ = apiKey
	return User{ID: "local", Role: RoleOperator}, nil
}

func (a *Authorizer) AuthorizeTool(user User, toolsetID, toolName string) error {
	if a == nil || len(a.allowedTools) == 0 {
		return nil
	}
	for _, allowed := range a.allowedTools {
		if allowed == toolName || allowed == toolsetID {
			return nil
		}
		if prefix, ok := strings.CutSuffix(allowed, ".*"); ok && strings.HasPrefix(toolName, prefix+".") {
			return nil
		}
	}
	return fmt.Errorf("tool %s not allowed for user %s", toolName, user.ID)
}
