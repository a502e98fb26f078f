package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"catalog-crud/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var HttpClientTracer = otel.Tracer("HttpClient")

// HTTPClient is a small JSON-over-HTTP client with trace propagation.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	headers map[string]string
}

type RequestOptions struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    interface{}
}

// APIError is returned for any non-2xx response. Message comes from the
// {"message": ...} body when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) IsNotFound() bool    { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsClientError() bool { return e.StatusCode >= 400 && e.StatusCode < 500 }
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 }

// NewHTTPClient builds a client without a timeout; requests end when the
// caller's context does.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{
		client:  httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
	}
}

func (c *HTTPClient) SetDefaultHeader(key, value string) {
	c.headers[key] = value
}

// Do sends the request and decodes a 2xx JSON body into result (may be nil).
func (c *HTTPClient) Do(ctx context.Context, opts RequestOptions, result interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := HttpClientTracer.Start(ctx, "HttpClient "+opts.Method)
	defer span.End()

	var bodyReader io.Reader
	if opts.Body != nil {
		bodyBytes, err := json.Marshal(opts.Body)
		if err != nil {
			logger.Error(ctx, "Failed to encode body", slog.String("error", err.Error()))
			return fmt.Errorf("encode body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, c.buildURL(opts.URL), bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req, opts.Headers)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
	)
	logger.Debug(ctx, "HttpClient request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		logger.Error(ctx, "Failed to execute request", slog.String("error", err.Error()))
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(rawBody, &body) == nil {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if result != nil && len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, result); err != nil {
			logger.Error(ctx, "Failed to parse response", slog.String("error", err.Error()))
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	return c.Do(ctx, RequestOptions{Method: http.MethodGet, URL: url}, result)
}

func (c *HTTPClient) Post(ctx context.Context, url string, body, result interface{}) error {
	return c.Do(ctx, RequestOptions{Method: http.MethodPost, URL: url, Body: body}, result)
}

func (c *HTTPClient) Put(ctx context.Context, url string, body, result interface{}) error {
	return c.Do(ctx, RequestOptions{Method: http.MethodPut, URL: url, Body: body}, result)
}

func (c *HTTPClient) Delete(ctx context.Context, url string, result interface{}) error {
	return c.Do(ctx, RequestOptions{Method: http.MethodDelete, URL: url}, result)
}

func (c *HTTPClient) buildURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

func (c *HTTPClient) setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
