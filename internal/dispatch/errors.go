package dispatch

import (
	"errors"
	"net/http"

	"cmc-mcp/internal/models"
	"cmc-mcp/internal/upstream"
)

// CallerError is a failure caused by the invocation itself: a missing
// credential or arguments that do not satisfy the tool's schema.
type CallerError struct {
	Message string
	Status  int
}

func (e *CallerError) Error() string { return e.Message }

// HTTPStatus defaults to 403 when no status is attached.
func (e *CallerError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusForbidden
	}
	return e.Status
}

// UpstreamError is a failure of the CoinMarketCap request.
type UpstreamError struct {
	Message string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus is the upstream status, or 500 when none was received.
func (e *UpstreamError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

type statusCoder interface {
	HTTPStatus() int
}

// envelopeFromError converts err into a Failure envelope. Errors that carry
// no status are treated as caller errors.
func envelopeFromError(err error) models.Envelope {
	var sc statusCoder
	if errors.As(err, &sc) {
		return models.Fail(err.Error(), sc.HTTPStatus())
	}
	return models.Fail(err.Error(), http.StatusForbidden)
}

// errorType is the metrics label for err.
func errorType(err error) string {
	var ce *CallerError
	if errors.As(err, &ce) {
		if ce.HTTPStatus() == http.StatusBadRequest {
			return "validation"
		}
		return "credential"
	}
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return "upstream_status"
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return "transport"
	}
	return "unknown"
}
