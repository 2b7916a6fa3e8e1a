package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/yusaku0324/osakamenesu-sub000/internal/config"
	"github.com/yusaku0324/osakamenesu-sub000/internal/utils"
)

// terminalStatuses are business-final regardless of which base answered:
// retrying another base cannot change an auth failure, a missing resource,
// a version conflict or a validation rejection.
var terminalStatuses = map[int]bool{
	http.StatusUnauthorized:        true,
	http.StatusForbidden:           true,
	http.StatusNotFound:            true,
	http.StatusConflict:            true,
	http.StatusUnprocessableEntity: true,
}

// ExchangeError is raised when every configured base failed to produce a
// terminal response. It carries the last attempt's failure.
type ExchangeError struct {
	Method string
	Path   string
	Last   string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s %s: all API bases failed: %s", e.Method, e.Path, e.Last)
}

// Exchange is the raw outcome of one logical request: the terminal status
// plus the response body, prior to any per-resource interpretation.
type Exchange struct {
	StatusCode int
	Body       []byte
}

// RequestOptions carries per-call request context. SessionCookie is the
// raw Cookie header forwarded when the call originates from a
// server-rendering context on behalf of a logged-in operator.
type RequestOptions struct {
	SessionCookie string
}

// Client issues one logical request across the resolver's candidate bases.
// One attempt per base, no backoff: the loop exists for redundant routing,
// not transient-fault tolerance.
type Client struct {
	resolver   *Resolver
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	return &Client{
		resolver:   NewResolver(cfg),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Resolver() *Resolver { return c.resolver }

// Exchange performs method+path against each candidate base in order and
// returns the first response whose status is in `success` or in the fixed
// terminal set. Transport errors and unrecognized statuses move on to the
// next base; if every base fails the result is an *ExchangeError carrying
// the last failure. Context cancellation aborts the loop immediately.
func (c *Client) Exchange(ctx context.Context, method, path string, body any, opts *RequestOptions, success ...int) (Exchange, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return Exchange{}, fmt.Errorf("%s %s: encode request body: %w", method, path, err)
		}
	}

	var last string
	for _, base := range c.resolver.Candidates() {
		if err := ctx.Err(); err != nil {
			return Exchange{}, err
		}

		reqURL := c.resolver.BuildURL(base, path)
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			last = err.Error()
			continue
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if opts != nil && opts.SessionCookie != "" {
			req.Header.Set("Cookie", opts.SessionCookie)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return Exchange{}, ctx.Err()
			}
			last = err.Error()
			utils.Logger.WithError(err).Debugf("API base %s unreachable for %s %s", base, method, path)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			last = fmt.Sprintf("read response from %s: %v", base, readErr)
			continue
		}

		if statusIn(resp.StatusCode, success) || terminalStatuses[resp.StatusCode] {
			return Exchange{StatusCode: resp.StatusCode, Body: respBody}, nil
		}

		last = fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, base)
		utils.Logger.Debugf("%s %s via %s: %s, trying next base", method, path, base, last)
	}

	return Exchange{}, &ExchangeError{Method: method, Path: path, Last: last}
}

func statusIn(status int, set []int) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
