package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/rickgao/disclosure-data/internal/auth"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/version"
)

// wait blocks on the service's rate limiter, if any.
func (c *Client) wait(ctx context.Context, s model.Service) error {
	lim, ok := c.limiters[s]
	if !ok {
		return nil
	}
	return lim.Wait(ctx)
}

// doRequest performs the single HTTP round trip for q.
func (c *Client) doRequest(ctx context.Context, q model.Query, cred auth.Credential) ([]byte, error) {
	fullURL := c.endpoints.base(q.Service) + q.Path
	if values := q.Values(); len(values) > 0 {
		fullURL += "?" + values.Encode()
	}

	payload, err := q.Body()
	if err != nil {
		return nil, fmt.Errorf("encode query body: %w", err)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	method := q.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	cred.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Service: q.Service, Op: "do request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Service: q.Service, Op: "read response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{
			Service:    q.Service,
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(respBody, resp.StatusCode),
		}
	case resp.StatusCode >= 400:
		return nil, &UpstreamError{
			Service:    q.Service,
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(respBody, resp.StatusCode),
			Body:       respBody,
		}
	}

	return respBody, nil
}

// upstreamMessage pulls a human-readable message out of an error body,
// falling back to the status text.
func upstreamMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "error.message", "error", "detail"} {
			if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}
	return http.StatusText(status)
}
