package logger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrMap(attrs []slog.Attr) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value.Any()
	}
	return out
}

func TestEnrich_RequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	got := attrMap(enrich(ctx, slog.String("k", "v")))

	assert.Equal(t, "v", got["k"])
	assert.Equal(t, "req-1", got["request_id"])
	assert.NotContains(t, got, "trace_id", "no span in context")
}

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromEnv("DEBUG"))
	assert.Equal(t, slog.LevelError, levelFromEnv("error"))
	assert.Equal(t, slog.LevelInfo, levelFromEnv(""))
}

func TestDecodeBody_JSONArrayKeepsEnds(t *testing.T) {
	body := []byte(`[{"name":"a","price":1},{"name":"b"},{"name":"c","inStock":true}]`)

	got := attrMap(DecodeBody("application/json; charset=utf-8", body))

	assert.Equal(t, int64(3), got["http.body.length"])
	assert.Equal(t, "a", got["http.body.0.name"])
	assert.Equal(t, 1.0, got["http.body.0.price"])
	assert.Equal(t, "c", got["http.body.2.name"])
	assert.Equal(t, true, got["http.body.2.inStock"])
	assert.NotContains(t, got, "http.body.1.name")
}

func TestDecodeBody_Fallbacks(t *testing.T) {
	assert.Nil(t, DecodeBody("application/json", nil))

	got := attrMap(DecodeBody("application/json", []byte("{not json")))
	assert.Equal(t, "{not json", got["http.body"])

	got = attrMap(DecodeBody("text/plain", []byte("hello")))
	assert.Equal(t, "hello", got["http.body"])

	got = attrMap(DecodeBody("application/octet-stream", []byte{0x01, 0x02}))
	assert.Equal(t, "AQI=", got["http.body.base64"])

	got = attrMap(DecodeBody("image/png", make([]byte, 300)))
	assert.Equal(t, int64(300), got["http.body.size_bytes"])
}

func TestCaptureBody_LeavesBodyReadable(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"Lamp"}`))

	captured, err := CaptureBody(r)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Lamp"}`, string(captured))

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Lamp"}`, string(rest))
}

func TestHeaderAttrs_Allowlist(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer secret")

	got := attrMap(HeaderAttrs(h))

	assert.Equal(t, "application/json", got["http.header.content-type"])
	assert.NotContains(t, got, "http.header.authorization")
}

func TestBuildLogLine(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	line := buildLogLine("info", "Product created", at, []slog.Attr{slog.String("id", "abc")})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	assert.Equal(t, "info", got["level"])
	assert.Equal(t, "Product created", got["message"])
	assert.Equal(t, "2024-03-01T10:00:00Z", got["time"])
	assert.Equal(t, "abc", got["id"])
}

func TestSendLog_PushesLokiPayload(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		received <- payload
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	t.Setenv("REMOTE_LOG_HTTP_URI", srv.URL)
	t.Setenv("APP_NAME", "catalog-test")

	sendLog("warn", "Store ping failed", nil)

	select {
	case payload := <-received:
		streams := payload["streams"].([]any)
		require.Len(t, streams, 1)
		stream := streams[0].(map[string]any)["stream"].(map[string]any)
		assert.Equal(t, "warn", stream["level"])
		assert.Equal(t, "catalog-test", stream["job"])
	case <-time.After(3 * time.Second):
		t.Fatal("remote log was not sent")
	}
}
