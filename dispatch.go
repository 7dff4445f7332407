package webcore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// do is the single dispatch path every service caller goes through: it builds
// the request, injects the bearer token when one is held, tags the request
// with an id, and classifies the response. A 401 forces a logout before the
// caller sees [ErrUnauthorized]. Requests are never retried here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil || c.httpClient == nil {
		return ErrClientNotReady
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.Observe(MetricRequestLatency, time.Since(start))
	if err != nil {
		c.metrics.Inc(MetricRequestFailure)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventRequestFailure,
			RequestID: requestID,
			Success:   false,
			Error:     err.Error(),
			Metadata:  map[string]string{"method": method, "path": path},
		})
		return fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.API.MaxResponseBytes))
	if err != nil {
		c.metrics.Inc(MetricRequestFailure)
		return fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.metrics.Inc(MetricRequestUnauthorized)
		c.forceLogout(ctx, requestID)
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		c.metrics.Inc(MetricRequestFailure)
		apiErr := decodeAPIError(resp.StatusCode, data)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventRequestFailure,
			RequestID: requestID,
			Success:   false,
			Error:     apiErr.Error(),
			Metadata:  map[string]string{"method": method, "path": path},
		})
		return apiErr
	}

	c.metrics.Inc(MetricRequestSuccess)

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) del(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}
