// Package client talks to the resource API: it turns drafts into multipart
// requests and decodes the stored representation the API returns.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

const resourcePath = "/resource"

// Client is safe for concurrent use.
type Client struct {
	baseURL      string
	assetBaseURL string
	token        string
	http         *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithToken sends the token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithAssetBaseURL sets the prefix used by AssetURL. It defaults to the
// scheme and host of the API base URL.
func WithAssetBaseURL(u string) Option {
	return func(c *Client) { c.assetBaseURL = strings.TrimRight(u, "/") }
}

// New creates a client for the API rooted at baseURL, e.g.
// http://localhost:5000/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	if u, err := url.Parse(c.baseURL); err == nil && u.Host != "" {
		c.assetBaseURL = u.Scheme + "://" + u.Host
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AssetURL returns the link for a stored file path. It is meant for display
// and download only; stored files are never re-submitted.
func (c *Client) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.assetBaseURL + path
}

// Create posts a new resource.
func (c *Client) Create(ctx context.Context, d *domain.Draft) (*domain.Existing, error) {
	return c.submit(ctx, OpCreate, http.MethodPost, c.baseURL+resourcePath, d)
}

// Update replaces the resource identified by id.
func (c *Client) Update(ctx context.Context, id string, d *domain.Draft) (*domain.Existing, error) {
	return c.submit(ctx, OpUpdate, http.MethodPut, c.baseURL+resourcePath+"/"+url.PathEscape(id), d)
}

func (c *Client) submit(ctx context.Context, op Op, method, endpoint string, d *domain.Draft) (*domain.Existing, error) {
	body, contentType, err := EncodeMultipart(d)
	if err != nil {
		return nil, &SubmitError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &SubmitError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	var stored domain.Existing
	if err := c.do(req, &stored); err != nil {
		return nil, withOp(op, err)
	}
	logger.Info().Str("op", string(op)).Str("id", stored.ID).Str("kinds", d.Selected.String()).Msg("Resource submitted")
	return &stored, nil
}

// Get fetches one stored resource.
func (c *Client) Get(ctx context.Context, id string) (*domain.Existing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+resourcePath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, &SubmitError{Op: OpGet, Err: err}
	}
	var stored domain.Existing
	if err := c.do(req, &stored); err != nil {
		return nil, withOp(OpGet, err)
	}
	return &stored, nil
}

// ListFilter narrows List results. Zero values are not sent.
type ListFilter struct {
	University string
	Branch     string
	Semester   string
	Subject    string
	Kind       domain.Kind
	Page       int
	Size       int
}

// Pagination mirrors the API's pagination block.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// ListResult is one page of stored resources.
type ListResult struct {
	Resources  []domain.Existing `json:"resources"`
	Pagination Pagination        `json:"pagination"`
}

// List fetches a filtered page of resources.
func (c *Client) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("university", f.University)
	set("branch", f.Branch)
	set("semester", f.Semester)
	set("subject", f.Subject)
	set("kind", string(f.Kind))
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	endpoint := c.baseURL + resourcePath
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &SubmitError{Op: OpList, Err: err}
	}
	var out ListResult
	if err := c.do(req, &out); err != nil {
		return nil, withOp(OpList, err)
	}
	return &out, nil
}

// Delete removes a stored resource and its files.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+resourcePath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return &SubmitError{Op: OpDelete, Err: err}
	}
	return withOp(OpDelete, c.do(req, nil))
}

// envelope is the response wrapper used by the API. Success is a pointer so
// a bare representation can be told apart from an envelope.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string      `json:"code"`
		Message string      `json:"message"`
		Field   string      `json:"field"`
		Details interface{} `json:"details"`
	} `json:"error"`
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// do sends req and decodes the envelope's data into out. Only 200 and 201
// count as success, and an envelope must report success and, when out is
// set, carry data.
func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmitError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &SubmitError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		se := &SubmitError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		if decodeErr == nil && env.Error != nil {
			se.Code = env.Error.Code
			se.Message = env.Error.Message
		}
		return se
	}
	if decodeErr == nil && env.Success != nil && !*env.Success {
		se := &SubmitError{StatusCode: resp.StatusCode, Err: errors.New("API reported failure")}
		if env.Error != nil {
			se.Code = env.Error.Code
			se.Message = env.Error.Message
		}
		return se
	}
	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return &SubmitError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", decodeErr)}
	}

	data := env.Data
	if env.Success == nil {
		// Tolerate APIs that return the bare representation.
		data = raw
	}
	if isNull(data) {
		return &SubmitError{StatusCode: resp.StatusCode, Err: errors.New("response carried no data")}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &SubmitError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode resource: %w", err)}
	}
	return nil
}

func withOp(op Op, err error) error {
	if se, ok := err.(*SubmitError); ok {
		se.Op = op
		return se
	}
	return err
}
