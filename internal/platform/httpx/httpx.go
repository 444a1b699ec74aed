// Package httpx carries the retry policy shared by outbound API clients.
package httpx

import (
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatusCoder is implemented by client errors that carry the HTTP status of
// a non-2xx response.
type StatusCoder interface {
	HTTPStatusCode() int
}

// Retryable reports whether a failed request is worth repeating: network
// timeouts, 408, 429, and 5xx. Everything else is a caller problem.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		code := sc.HTTPStatusCode()
		return code == http.StatusRequestTimeout ||
			code == http.StatusTooManyRequests ||
			(code >= 500 && code <= 599)
	}
	return false
}

// Backoff computes the next sleep before a retry. The server's Retry-After
// header wins when present; otherwise the caller's exponential base is used.
// The result is capped at max and jittered by up to 20% either way so
// concurrent callers do not retry in lockstep.
func Backoff(resp *http.Response, base, max time.Duration) time.Duration {
	sleepFor := base
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				sleepFor = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && sleepFor > max {
		sleepFor = max
	}
	if sleepFor <= 0 {
		return 0
	}
	jitter := (rand.Float64()*2 - 1) * 0.2 * float64(sleepFor)
	return sleepFor + time.Duration(jitter)
}
