package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultTimeout bounds every request issued by the client.
const defaultTimeout = 30 * time.Second

// Client is a thin HTTP client for the Copay administration REST API.
// It owns no view state: it translates method calls into requests,
// attaches the bearer session token and a correlation id, and decodes
// JSON responses. All list endpoints go through decodeList so the
// bare-array and {data, meta} envelope shapes are handled in one place.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new API client. The baseURL should be the root
// URL of the backend (e.g. https://api.copay.africa). The logger may
// be nil, in which case a no-op logger is used.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: log,
	}
}

// SetToken installs the bearer token used on subsequent requests.
// Called after login and when restoring a persisted session.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	_, err := c.do(ctx, http.MethodGet, path, nil, result)
	return err
}

// getRaw performs an HTTP GET request and returns the raw response
// body. Used for endpoints that return plain text (CSV export).
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) (string, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// post performs an HTTP POST request with a JSON body and unmarshals
// the JSON response.
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	_, err := c.do(ctx, http.MethodPost, path, body, result)
	return err
}

// patch performs an HTTP PATCH request with a JSON body and unmarshals
// the JSON response.
func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	_, err := c.do(ctx, http.MethodPatch, path, body, result)
	return err
}

// put performs an HTTP PUT request with a JSON body and unmarshals
// the JSON response.
func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	_, err := c.do(ctx, http.MethodPut, path, body, result)
	return err
}

// delete performs an HTTP DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// getList performs a GET and decodes either response shape into a
// ResourceList via decodeList.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) (listResult[T], error) {
	var zero listResult[T]
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return zero, err
	}
	return decodeList[T](body)
}

// do is the core HTTP method: it builds the request, attaches auth and
// a correlation id, maps error statuses, and decodes JSON. There is no
// automatic retry; failures surface to the calling page, which renders
// them behind a manual retry action.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) ([]byte, error) {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{
			Message: "session expired or invalid credentials, sign in again",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := newStatusError(resp.StatusCode, respBody)
		c.log.Warn("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", statusErr.Message),
		)
		return nil, statusErr
	}

	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return respBody, nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return respBody, nil
}
