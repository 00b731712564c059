package profile

import "fmt"

// ConfigError reports a structurally invalid discipline profile. It carries
// every issue found so operators can fix a profile file in one pass.
type ConfigError struct {
	ProfileID string
	Issues    []string
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	id := e.ProfileID
	if id == "" {
		id = "<unnamed>"
	}
	if len(e.Issues) == 1 {
		return fmt.Sprintf("profile %s: %s", id, e.Issues[0])
	}
	return fmt.Sprintf("profile %s: %d configuration issues: %v", id, len(e.Issues), e.Issues)
}

// NotFoundError indicates a profile lookup missed.
type NotFoundError struct {
	Key string
}

// Error returns the error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %q", e.Key)
}
