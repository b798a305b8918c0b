package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/five82/roster/internal/employee"
)

// Service defines the record operations the UI issues. *Client implements it;
// tests substitute fakes.
type Service interface {
	Probe(ctx context.Context, ep Endpoint) error
	Create(ctx context.Context, ep Endpoint, rec employee.Record) (employee.Record, error)
	List(ctx context.Context, ep Endpoint, filter Filter) ([]employee.Record, error)
	Update(ctx context.Context, ep Endpoint, rec employee.Record) (employee.Record, error)
	Delete(ctx context.Context, ep Endpoint, id string) (Ack, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Filter narrows a List call. The zero value lists everything.
type Filter struct {
	EmployeeID string
}

// Ack is the decoded body of a successful delete. Body is nil for 204 responses.
type Ack struct {
	Body json.RawMessage
}

// Options configure a Client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client issues requests against the employee service. It keeps no target
// state of its own; see Endpoint.
type Client struct {
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "roster/0.1"
	requestTimeout   = 5 * time.Second
	maxResponseBytes = 8 << 20
	requestIDHeader  = "X-Request-ID"
)

// NewClient builds a Client. Zero options use a 5 second timeout.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{http: httpClient, userAgent: userAgent}
}

// Probe issues a bare GET against the base URL. Any 2xx counts as connected.
func (c *Client) Probe(ctx context.Context, ep Endpoint) error {
	_, err := c.do(ctx, "probe", http.MethodGet, ep, &url.URL{Path: employee.PathProbe}, nil, false)
	return err
}

// CheckConnection reports whether Probe succeeded.
func (c *Client) CheckConnection(ctx context.Context, ep Endpoint) bool {
	return c.Probe(ctx, ep) == nil
}

// Create posts a new record. When the response body is not itself a record
// the submitted record is returned.
func (c *Client) Create(ctx context.Context, ep Endpoint, rec employee.Record) (employee.Record, error) {
	return c.send(ctx, "create", http.MethodPost, ep, employee.PathCreate, rec)
}

// Update replaces a record in full.
func (c *Client) Update(ctx context.Context, ep Endpoint, rec employee.Record) (employee.Record, error) {
	if err := ep.valid(); err != nil {
		return employee.Record{}, &Error{Op: "update", Kind: KindUnreachable, Err: err}
	}
	return c.send(ctx, "update", http.MethodPut, ep, ep.Schema.UpdatePath(rec.ID), rec)
}

// List fetches records, optionally filtered by employee id.
func (c *Client) List(ctx context.Context, ep Endpoint, filter Filter) ([]employee.Record, error) {
	const op = "list"
	if err := ep.valid(); err != nil {
		return nil, &Error{Op: op, Kind: KindUnreachable, Err: err}
	}
	rel := &url.URL{Path: employee.PathList}
	if id := strings.TrimSpace(filter.EmployeeID); id != "" {
		rel.RawQuery = url.Values{employee.FilterParam: []string{id}}.Encode()
	}
	raw, err := c.do(ctx, op, http.MethodGet, ep, rel, nil, true)
	if err != nil {
		return nil, err
	}
	recs, err := ep.Schema.DecodeList(raw)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindMalformed, Err: err}
	}
	return recs, nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, ep Endpoint, id string) (Ack, error) {
	const op = "delete"
	if err := ep.valid(); err != nil {
		return Ack{}, &Error{Op: op, Kind: KindUnreachable, Err: err}
	}
	body, err := ep.Schema.DeleteBody(id)
	if err != nil {
		return Ack{}, fmt.Errorf("encode delete body: %w", err)
	}
	raw, err := c.do(ctx, op, http.MethodDelete, ep, &url.URL{Path: ep.Schema.DeletePath(id)}, body, true)
	if err != nil {
		return Ack{}, err
	}
	return Ack{Body: raw}, nil
}

func (c *Client) send(ctx context.Context, op, method string, ep Endpoint, path string, rec employee.Record) (employee.Record, error) {
	if err := ep.valid(); err != nil {
		return employee.Record{}, &Error{Op: op, Kind: KindUnreachable, Err: err}
	}
	body, err := ep.Schema.Encode(rec)
	if err != nil {
		return employee.Record{}, fmt.Errorf("encode record: %w", err)
	}
	raw, err := c.do(ctx, op, method, ep, &url.URL{Path: path}, body, true)
	if err != nil {
		return employee.Record{}, err
	}
	if raw == nil {
		return rec, nil
	}
	out, err := ep.Schema.DecodeRecord(raw)
	if errors.Is(err, employee.ErrNotRecord) {
		return rec, nil
	}
	if err != nil {
		return employee.Record{}, &Error{Op: op, Kind: KindMalformed, Err: err}
	}
	return out, nil
}

// do performs one request. With wantBody set, a 2xx response must carry valid
// JSON unless it is a 204.
func (c *Client) do(ctx context.Context, op, method string, ep Endpoint, rel *url.URL, body []byte, wantBody bool) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if ep.Base == nil {
		return nil, &Error{Op: op, Kind: KindUnreachable, Err: fmt.Errorf("endpoint has no base url")}
	}
	reqURL := ep.Base.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := log.With().
		Str("op", op).
		Str("method", method).
		Str("url", reqURL.String()).
		Str("request_id", requestID).
		Logger()

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("request failed")
		return nil, &Error{Op: op, Kind: KindUnreachable, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	logger = logger.With().Int("status", resp.StatusCode).Dur("elapsed", time.Since(started)).Logger()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		logger.Warn().Msg("request rejected")
		return nil, &Error{Op: op, Kind: KindRejected, StatusCode: resp.StatusCode}
	}
	if !wantBody {
		logger.Debug().Msg("request ok")
		return nil, nil
	}
	if resp.StatusCode == http.StatusNoContent {
		logger.Debug().Msg("request ok, no content")
		return nil, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Warn().Err(err).Msg("read response failed")
		return nil, &Error{Op: op, Kind: KindUnreachable, Err: fmt.Errorf("read response: %w", err)}
	}
	if !json.Valid(raw) {
		logger.Warn().Int("bytes", len(raw)).Msg("response is not valid json")
		return nil, &Error{Op: op, Kind: KindMalformed, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: invalid json")}
	}
	logger.Debug().Int("bytes", len(raw)).Msg("request ok")
	return json.RawMessage(raw), nil
}
