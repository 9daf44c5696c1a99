package connectors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aiod/metacat/pkg/domain"
)

var (
	// ErrBadIdentifier marks an identifier a connector cannot decode.
	ErrBadIdentifier = errors.New("bad platform specific identifier")

	// ErrUpstream marks a failed exchange with a platform.
	ErrUpstream = errors.New("upstream error")

	// ErrNotIntegral marks a numeric quality which should be an integer
	// but is not.
	ErrNotIntegral = errors.New("not an integral value")

	// ErrAmbiguous marks an identifier matching more than one upstream
	// record where exactly one is required.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrNoConnector marks a platform without a registered connector.
	ErrNoConnector = errors.New("no connector for platform")
)

// BadIdentifier reports a platform specific identifier that does not have
// the shape the connector requires. It is detected before any upstream call.
type BadIdentifier struct {
	Identifier string

	// Expected describes the shape the connector accepts.
	Expected string
}

func (e BadIdentifier) Error() string {
	return fmt.Sprintf(
		"bad platform specific identifier '%s': expected %s",
		e.Identifier, e.Expected,
	)
}

func (e BadIdentifier) Unwrap() error {
	return ErrBadIdentifier
}

// Upstream reports a failed exchange with a platform API.
type Upstream struct {
	Platform domain.Platform

	// Status is the upstream HTTP status, or 0 when the exchange failed
	// before a response arrived.
	Status int

	// Message is the platform's own error message, when it sent one.
	Message string

	// During names the operation that was underway.
	During string
}

func (e Upstream) Error() string {
	message := e.Message
	if message == "" {
		message = "(no message)"
	}
	return fmt.Sprintf(
		"%s: %s failed (status %d): %s",
		e.Platform, e.During, e.Status, message,
	)
}

func (e Upstream) Unwrap() error {
	return ErrUpstream
}

// NotIntegral reports a dataset quality that arrived as a non-integer
// where only integers make sense.
type NotIntegral struct {
	Quality string
	Value   string
}

func (e NotIntegral) Error() string {
	return fmt.Sprintf(
		"quality %s has value '%s', which is not an integer",
		e.Quality, e.Value,
	)
}

func (e NotIntegral) Unwrap() error {
	return ErrNotIntegral
}

// Ambiguous reports an identifier matching several upstream records where
// exactly one match is required.
type Ambiguous struct {
	What    string
	Matches []string
}

func (e Ambiguous) Error() string {
	return fmt.Sprintf(
		"%s matches %d records: %s",
		e.What, len(e.Matches), strings.Join(e.Matches, ", "),
	)
}

func (e Ambiguous) Unwrap() error {
	return ErrAmbiguous
}
