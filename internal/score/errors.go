package score

import "fmt"

// ConfigError reports an invalid scorer configuration. Configuration is
// validated eagerly at construction so a bad setup never reaches the
// scoring loop.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "score: invalid configuration: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
