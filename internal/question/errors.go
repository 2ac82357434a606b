package question

import (
	"fmt"
	"strings"
)

// Issue captures one problem found in an externally supplied question record.
type Issue struct {
	Field   string
	Message string
}

// SchemaError reports a malformed question record.
type SchemaError struct {
	Issues []Issue
}

// Error returns a readable message for schema failures.
func (err *SchemaError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "question schema validation failed"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question schema validation failed: %s", strings.Join(parts, "; "))
}

// ValidationError reports an illegal value supplied to an edit or transition.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Message)
}

// RangeError reports a reference to an index, stem, option, or id that does not exist.
type RangeError struct {
	Field string
	Value string
}

// Error returns a readable message for range failures.
func (err *RangeError) Error() string {
	return fmt.Sprintf("%s %s is out of range", err.Field, err.Value)
}

// ConfigurationError reports an unusable setup, such as an empty question set.
type ConfigurationError struct {
	Message string
}

// Error returns the configuration failure message.
func (err *ConfigurationError) Error() string {
	return err.Message
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &SchemaError{Issues: collector.issues}
}
