package codegen

import (
	"fmt"
	"strings"

	"github.com/teranos/jsongen/errors"
)

// RegistryError reports an unknown language lookup or a conflicting
// registration.
type RegistryError struct {
	Language  string
	Known     []string // sorted canonical names at the time of failure
	Duplicate bool
}

func (e *RegistryError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("generator already registered for language: %s", e.Language)
	}
	return fmt.Sprintf("no generator registered for language: %s", e.Language)
}

// Unwrap lets failed lookups match errors.ErrUnknownLanguage.
func (e *RegistryError) Unwrap() error {
	if e.Duplicate {
		return nil
	}
	return errors.ErrUnknownLanguage
}

// ConfigError reports an unknown generator option or a value outside
// the option's accepted set.
type ConfigError struct {
	Key    string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unknown language_config key: %q", e.Key)
	}
	return fmt.Sprintf("invalid value for option %q: %s", e.Key, e.Reason)
}

func unknownOption(key string) *ConfigError {
	return &ConfigError{Key: key}
}

func badOptionValue(key string, value any, allowed ...string) *ConfigError {
	return &ConfigError{
		Key:    key,
		Value:  value,
		Reason: fmt.Sprintf("%v (expected one of: %s)", value, strings.Join(allowed, ", ")),
	}
}

func wrongOptionType(key string, value any, want string) *ConfigError {
	return &ConfigError{
		Key:    key,
		Value:  value,
		Reason: fmt.Sprintf("%v is %T, expected %s", value, value, want),
	}
}

// GeneratorError reports an internal rendering failure inside a
// language backend, including recovered panics.
type GeneratorError struct {
	Language string
	Cause    error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("%s generator failed: %v", e.Language, e.Cause)
}

func (e *GeneratorError) Unwrap() error {
	return e.Cause
}
