package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/metrics"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"

	AuthHeader      = "X-Auth-Token"
	RequestIDHeader = "X-Request-Id"

	DefaultMaxResponseBytes = 4 << 20
)

// ErrResponseTooLarge is returned when a response body exceeds the
// configured limit.
var ErrResponseTooLarge = errors.New("response body too large")

// SessionSource supplies the session whose token authenticates a request.
type SessionSource interface {
	Get(ctx context.Context) *domain.Session
}

// Executor sends requests to the hostel API relative to a fixed base URL.
type Executor struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionSource
	maxBody    int64
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

var _ ports.RequestExecutor = (*Executor)(nil)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	Logger     *slog.Logger

	// MaxResponseBytes caps the response body size. Zero means
	// DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

func NewExecutor(cfg Config, sessions SessionSource) *Executor {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}
	return &Executor{
		baseURL:    baseURL,
		httpClient: httpClient,
		maxBody:    maxBody,
		sessions:   sessions,
		metrics:    cfg.Metrics,
		logger:     logger.With("component", "http-executor"),
	}
}

func (e *Executor) BaseURL() string {
	return e.baseURL
}

// Do sends req and returns the decoded JSON object. Bodies that are empty or
// not a JSON object decode to an empty payload. A non-2xx status yields an
// *APIError carrying the server message.
func (e *Executor) Do(ctx context.Context, req ports.Request) (domain.Payload, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, e.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for name, values := range req.Headers {
		httpReq.Header.Del(name)
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if e.sessions != nil {
		if sess := e.sessions.Get(ctx); sess != nil && sess.Token != "" {
			httpReq.Header.Set(AuthHeader, sess.Token)
		}
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}
	requestID := httpReq.Header.Get(RequestIDHeader)

	start := time.Now()
	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		e.metrics.ObserveRequest(method, req.Path, "error", time.Since(start))
		e.logger.Debug("request failed", "method", method, "path", req.Path, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp.Body, e.maxBody)
	elapsed := time.Since(start)
	e.metrics.ObserveRequest(method, req.Path, strconv.Itoa(resp.StatusCode), elapsed)
	if err != nil {
		e.logger.Debug("reading response failed", "method", method, "path", req.Path, "status", resp.StatusCode, "request_id", requestID, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	payload := decodePayload(data)
	e.logger.Debug("request completed",
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", elapsed,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := payload.Text("message")
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return payload, nil
}

// readBody reads at most limit bytes and fails rather than truncating a
// longer body.
func readBody(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, limit)
	}
	return data, nil
}

func decodePayload(data []byte) domain.Payload {
	var payload domain.Payload
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return domain.Payload{}
	}
	return payload
}
