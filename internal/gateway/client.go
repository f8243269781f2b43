package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/metrics"
)

const defaultTimeout = 30 * time.Second

// CredentialSource yields the Basic payload to attach to outgoing requests.
// An empty string means anonymous: no Authorization header is sent.
type CredentialSource interface {
	Credential() string
}

// Client is the single access point to the backend API. Every outbound
// request passes through it: the base address is prepended, the session
// credential (when one exists) is re-sent as `Authorization: Basic ...`, and
// the body content type is normalized. It never retries, caches, or
// deduplicates, and it hands backend errors upward unmodified as *APIError.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     zerolog.Logger
}

// New creates a Client rooted at baseURL. A trailing slash on baseURL is
// tolerated; paths passed to the verb methods must start with "/".
func New(baseURL string, creds CredentialSource, log zerolog.Logger) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		creds:   creds,
		log:     log,
	}
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// PatchJSON issues a PATCH with a JSON body (partial update).
func (c *Client) PatchJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostMultipart issues a POST with a multipart/form-data body. The form's
// own content type (which carries the generated boundary) is used instead of
// the JSON default.
func (c *Client) PostMultipart(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, contentType, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, "application/json", reader, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cred := c.creds.Credential(); cred != "" {
		req.Header.Set("Authorization", "Basic "+cred)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, "network_error").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, "network_error").Inc()
		return fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}

	status := strconv.Itoa(resp.StatusCode)
	metrics.GatewayRequestsTotal.WithLabelValues(method, status).Inc()
	metrics.GatewayRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw}
		// A non-JSON error body is kept in Raw with an empty Body map.
		_ = json.Unmarshal(raw, &apiErr.Body)
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
