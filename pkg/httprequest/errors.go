package httprequest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Failure kinds. Every error returned by a read operation matches exactly one
// of these with errors.Is, and still matches its underlying cause.
var (
	// ErrMalformedLocation is returned when the target URL cannot be used.
	ErrMalformedLocation = errors.New("malformed location")

	// ErrConnection covers network level failures: refused or reset
	// connections, DNS and TLS errors.
	ErrConnection = errors.New("connection error")

	// ErrTimeout is returned when connecting or reading exceeds the timeout.
	ErrTimeout = errors.New("timeout")

	// ErrProtocol is returned when the server's response is not valid HTTP
	// or a body line exceeds the line size limit.
	ErrProtocol = errors.New("protocol error")

	// ErrEmptyResult is returned by ReadSingle when the body has no lines.
	ErrEmptyResult = errors.New("empty result")

	// ErrHTTPStatus is returned when the server answers with a status >= 400.
	ErrHTTPStatus = errors.New("http error status")

	// ErrInvalidProxy is returned by ParseProxy for unusable descriptors.
	ErrInvalidProxy = errors.New("invalid proxy")

	// ErrLibraryUsage is what the command line entry point fails with.
	ErrLibraryUsage = errors.New("incorrect usage: httprequest is a library, not an executable")
)

// Error is returned by the read operations.
type Error struct {
	// Kind is one of the failure sentinels above.
	Kind   error
	Method string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", e.Kind, e.Method, e.URL, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// StatusError carries the status of a response the server marked as failed.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "server returned HTTP response code " + e.Status
}

var protocolMarkers = []string{
	"malformed HTTP",
	"malformed MIME header",
	"malformed chunked encoding",
	"invalid byte in chunk length",
	"chunk length too large",
	"server gave HTTP response to HTTPS client",
	"unsupported transfer encoding",
}

// classify maps a transport error onto a failure kind.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrTimeout
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, bufio.ErrTooLong) {
		return ErrProtocol
	}
	msg := err.Error()
	for _, m := range protocolMarkers {
		if strings.Contains(msg, m) {
			return ErrProtocol
		}
	}
	return ErrConnection
}
