package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies extraction failures by how they are recovered.
type ErrorKind int

const (
	// KindTransient covers network failures, timeouts and non-200 responses.
	KindTransient ErrorKind = iota + 1
	// KindStructure means the expected page structure was absent.
	KindStructure
	// KindItem is a single item whose fields failed to parse.
	KindItem
	// KindPersistence is a seen-store read or write failure.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindStructure:
		return "structure"
	case KindItem:
		return "item"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// ErrStatus is wrapped by fetch errors caused by a non-200 response.
var ErrStatus = errors.New("unexpected status")

// ExtractionError carries the source and kind of a failure.
type ExtractionError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Transient wraps err as a fetch failure for source.
func Transient(source string, err error) error {
	return &ExtractionError{Source: source, Kind: KindTransient, Err: err}
}

// Structural reports that what was expected on the page is missing.
func Structural(source, what string) error {
	return &ExtractionError{Source: source, Kind: KindStructure, Err: fmt.Errorf("%s not found", what)}
}

// ItemError wraps a single-item parse failure.
func ItemError(source string, err error) error {
	return &ExtractionError{Source: source, Kind: KindItem, Err: err}
}

// KindOf returns the kind of the first ExtractionError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return 0
}
