// Package netretry classifies registry lookup failures that are worth retrying.
package netretry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// statusCodePattern matches HTTP 5xx and 429 status codes at word boundaries so a
// registry port such as ":5000" is not mistaken for a server error.
var statusCodePattern = regexp.MustCompile(`\b(50[0-4]|429)\b`)

// transientPatterns are fragments of registry and TCP error messages that indicate
// the same request may succeed later.
var transientPatterns = []string{
	"Internal Server Error", "Bad Gateway",
	"Service Unavailable", "Gateway Timeout",
	"Too Many Requests", "TOOMANYREQUESTS",
	"connection reset by peer", "connection refused",
	"i/o timeout", "TLS handshake timeout",
	"unexpected EOF",
}

// retryableStatus lists the registry HTTP statuses treated as transient.
var retryableStatus = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// IsRetryable reports whether err is a transient failure of a registry request.
// Cancellation is never retryable; registry responses are judged by status code,
// everything else by network timeouts and well-known transient messages.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *transport.Error
	if errors.As(err, &transportErr) {
		return retryableStatus[transportErr.StatusCode]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errMsg := err.Error()

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return statusCodePattern.MatchString(errMsg)
}
