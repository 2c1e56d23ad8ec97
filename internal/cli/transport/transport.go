// Package transport performs one JSON request/response exchange with the
// game server API and normalizes every outcome into a Result.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// ErrInvalidJSON is wrapped by failures caused by a response body that is not JSON
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// Request describes a single API call. Build it with NewRequest.
type Request struct {
	Method string
	Path   string
	Body   any
	Header map[string]string
}

// NewRequest builds a Request, copying header so later changes by the caller
// do not leak into it.
func NewRequest(method, path string, body any, header map[string]string) Request {
	return Request{
		Method: method,
		Path:   path,
		Body:   body,
		Header: maps.Clone(header),
	}
}

// Result is the outcome of Send. Err != nil marks a transport failure, in which
// case Status and Data are zero. Otherwise the exchange completed, whatever the
// status code.
type Result struct {
	Status int
	Data   json.RawMessage
	Err    error
}

// Failed reports whether the exchange failed before an HTTP response was parsed
func (r Result) Failed() bool {
	return r.Err != nil
}

// Message returns the failure description, or "" for a completed exchange
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Observer receives every outcome produced by a Transport
type Observer interface {
	Observe(req Request, res Result)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(req Request, res Result)

// Observe calls f(req, res)
func (f ObserverFunc) Observe(req Request, res Result) {
	f(req, res)
}

// Transport sends Requests to a single API server
type Transport struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	observers  []Observer
}

// Option configures a Transport
type Option func(*Transport)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(t *Transport) {
		t.httpClient = httpClient
	}
}

// WithLogger sets the logger used for per-request diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithObserver registers an observer that sees every outcome
func WithObserver(o Observer) Option {
	return func(t *Transport) {
		if o != nil {
			t.observers = append(t.observers, o)
		}
	}
}

// New creates a Transport for the server at baseURL. A scheme-less address
// such as "localhost:8080" is treated as plain HTTP.
func New(baseURL string, opts ...Option) *Transport {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	t := &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BaseURL returns the normalized base URL
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Send performs the exchange described by req. It never panics on network or
// decoding problems; those come back as a failed Result.
func (t *Transport) Send(ctx context.Context, req Request) Result {
	requestID := ulid.Make().String()
	start := time.Now()

	res := t.do(ctx, req)

	if res.Failed() {
		t.logger.Warn().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("path", req.Path).
			Err(res.Err).
			Msg("API request failed")
	} else {
		t.logger.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("path", req.Path).
			Int("status", res.Status).
			Dur("duration", time.Since(start)).
			Msg("API request")
	}

	for _, o := range t.observers {
		o.Observe(req, res)
	}

	return res
}

func (t *Transport) do(ctx context.Context, req Request) Result {
	var body io.Reader
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return Result{Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.baseURL+req.Path, body)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if !json.Valid(data) {
		return Result{Err: fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, ErrInvalidJSON)}
	}

	return Result{
		Status: resp.StatusCode,
		Data:   json.RawMessage(data),
	}
}
