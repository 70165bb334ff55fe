package types

import "fmt"

// ValidationError covers malformed events and unknown subscription keys.
// The ingestion layer decides retry-or-drop.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError covers unknown trigger or strategy types.
type ConfigurationError struct {
	Message string
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ConflictError is returned when a key is re-registered with parameters that
// differ from the existing registration.
type ConflictError struct {
	Key     SubscriptionKey
	Message string
}

func NewConflictError(key SubscriptionKey, format string, args ...interface{}) *ConflictError {
	return &ConflictError{Key: key, Message: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// EvaluationError wraps a failure inside a strategy evaluation. It is scoped
// to the single firing and never corrupts per-key state.
type EvaluationError struct {
	Key        SubscriptionKey
	StrategyID string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("strategy %s evaluation failed for %s: %v", e.StrategyID, e.Key, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// SinkError wraps a downstream signal delivery failure.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s delivery failed: %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
