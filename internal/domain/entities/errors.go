package entities

import "fmt"

// DiscoveryError is returned when the manifest glob cannot be expanded.
type DiscoveryError struct {
	Pattern string
	Cause   error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("can not find files using provided glob %q: %v", e.Pattern, e.Cause)
}

func (e *DiscoveryError) Unwrap() error { return e.Cause }

// ReadError is returned when a manifest cannot be read from disk.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("can not read %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error { return e.Cause }

// ParseError is returned when a manifest is not valid JSON.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("can not parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// WriteError is returned when synced versions cannot be written to a manifest.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("can not write synced versions into %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }

// PublishError is returned when the commit or push of the synced manifests fails.
type PublishError struct {
	Cause error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("can not publish synced versions: %v", e.Cause)
}

func (e *PublishError) Unwrap() error { return e.Cause }
