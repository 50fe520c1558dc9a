package distance

import (
	"commute-compensation-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ErrNoRoute is returned when a service answers without a driving route.
var ErrNoRoute = ports.ErrNoRoute

const (
	defaultHTTPTimeout  = 10 * time.Second
	defaultRetryBackoff = 200 * time.Millisecond
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// newHTTPClient returns a copy of client whose transport resends transient
// failures until maxAttempts requests were made. A budget of one sends
// exactly one request. The result is shared by the ORS requests and the
// Google Maps client.
func newHTTPClient(client *http.Client, maxAttempts int) *http.Client {
	c := &http.Client{Timeout: defaultHTTPTimeout}
	if client != nil {
		copied := *client
		c = &copied
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.Transport = &retryTransport{base: base, maxAttempts: maxAttempts, backoff: defaultRetryBackoff}
	return c
}

// retryTransport retries network errors and 429/5xx responses with
// exponential backoff. The last response is handed back unchanged so callers
// see the real status. Cancelling the request context stops the backoff.
type retryTransport struct {
	base        http.RoundTripper
	maxAttempts int
	backoff     time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	backoff := t.backoff

	for attempt := 1; ; attempt++ {
		out, err := t.attemptRequest(req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := t.base.RoundTrip(out)
		if attempt >= t.maxAttempts || !transient(resp, err) || !replayable(req) {
			return resp, err
		}
		if resp != nil {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

// attemptRequest returns the request to send on the given attempt. Later
// attempts get a clone with a fresh body.
func (t *retryTransport) attemptRequest(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 || req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}
	out := req.Clone(req.Context())
	out.Body = body
	return out, nil
}

func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

func transient(resp *http.Response, err error) bool {
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// doJSON sends req and turns any status of 400 or above into an
// *httpStatusError carrying the start of the body.
func doJSON(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
