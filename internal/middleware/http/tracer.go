package middleware_http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"catalog-crud/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("HttpMiddleware")

// ResponseWriter captures status, size and the first MaxBodyLogged bytes of body.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int64
	wroteHeader bool
	buf         bytes.Buffer
}

func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.wroteHeader = true
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)

	if room := logger.MaxBodyLogged - rw.buf.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		rw.buf.Write(b[:room])
	}
	return n, err
}

func (rw *ResponseWriter) Status() int {
	return rw.statusCode
}

// TraceMiddleware starts a server span per request (continuing an incoming
// trace), exposes the trace id in X-Trace-ID, records panics on the span and
// logs the request and response.
func TraceMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
			defer func() {
				if rec := recover(); rec != nil {
					span.RecordError(fmt.Errorf("panic: %v", rec))
					span.SetStatus(codes.Error, "panic occurred")
					span.End()
					panic(rec)
				}
				span.End()
			}()
			r = r.WithContext(ctx)

			logger.Info(ctx, "HTTP", logger.LogHTTPRequest(r, "incoming::request")...)

			rw := &ResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			rw.Header().Set("X-Trace-ID", span.SpanContext().TraceID().String())
			start := time.Now()

			next.ServeHTTP(rw, r)

			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.Pattern),
				attribute.Int("http.status_code", rw.statusCode),
				attribute.Int64("http.response_size", rw.size),
			)
			switch {
			case rw.statusCode >= 500:
				span.SetStatus(codes.Error, "internal server error")
			case rw.statusCode >= 400:
				span.SetStatus(codes.Error, "client error")
			default:
				span.SetStatus(codes.Ok, "")
			}

			attrs := logger.LogHTTPResponse(r, rw.Header(), rw.statusCode, rw.buf.Bytes(), time.Since(start).Milliseconds(), "incoming::response")
			logger.Info(ctx, "HTTP", attrs...)
		})
	}
}
