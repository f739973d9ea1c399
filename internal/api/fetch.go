package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rickgao/disclosure-data/internal/auth"
	"github.com/rickgao/disclosure-data/internal/model"
)

// Fetcher executes one query. Client implements it; RetryFetcher wraps it.
type Fetcher interface {
	Fetch(ctx context.Context, q model.Query, cred auth.Credential) (model.RawResult, error)
}

// errMalformed marks a success response whose body cannot be read as records.
var errMalformed = errors.New("malformed payload")

// Fetch executes q with cred. It returns an *AuthError, *UpstreamError or
// *TransportError on failure. A reachable service with no records yields an
// empty RawResult and a nil error.
func (c *Client) Fetch(ctx context.Context, q model.Query, cred auth.Credential) (model.RawResult, error) {
	if !cred.Present() {
		return model.RawResult{}, &AuthError{Service: q.Service, Message: "credential not configured"}
	}

	if err := c.wait(ctx, q.Service); err != nil {
		return model.RawResult{}, &TransportError{Service: q.Service, Op: "rate limit", Err: err}
	}

	start := time.Now()
	body, err := c.doRequest(ctx, q, cred)
	if err != nil {
		c.logger.Debug("fetch failed",
			"service", q.Service,
			"dataset", q.Dataset,
			"path", q.Path,
			"duration", time.Since(start),
			"err", err,
		)
		return model.RawResult{}, err
	}

	records, err := extractRecords(body, q.ResultPath)
	if err != nil {
		return model.RawResult{}, &UpstreamError{
			Service:    q.Service,
			StatusCode: http.StatusOK,
			Message:    err.Error(),
			Body:       body,
		}
	}

	c.logger.Debug("fetch complete",
		"service", q.Service,
		"dataset", q.Dataset,
		"path", q.Path,
		"records", len(records),
		"duration", time.Since(start),
	)

	if q.MayBeTruncated(len(records)) {
		c.logger.Warn("response reached page cap; later records were not requested",
			"dataset", q.Dataset,
			"page_cap", q.PageCap,
		)
	}

	return model.RawResult{Dataset: q.Dataset, Records: records, Body: body}, nil
}

// extractRecords locates the record array at path. Absent, null or empty
// record sets return no records. A lone object counts as one record, and
// array elements that are not objects are skipped.
func extractRecords(body []byte, path string) ([]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, errMalformed
	}

	var res gjson.Result
	if path == "" {
		res = gjson.ParseBytes(body)
	} else {
		res = gjson.GetBytes(body, path)
	}

	switch {
	case !res.Exists() || res.Type == gjson.Null:
		return nil, nil
	case res.IsArray():
		var records []json.RawMessage
		res.ForEach(func(_, v gjson.Result) bool {
			if v.IsObject() {
				records = append(records, json.RawMessage(v.Raw))
			}
			return true
		})
		return records, nil
	case res.IsObject():
		return []json.RawMessage{json.RawMessage(res.Raw)}, nil
	default:
		return nil, fmt.Errorf("%w: records at %q are %s, want array", errMalformed, path, res.Type)
	}
}
