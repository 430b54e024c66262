package httptool

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func newTestToolset() *Toolset {
	return NewToolset(New(Options{}))
}

func TestTools_Registered(t *testing.T) {
	tb := newTestToolset().Tools()

	for _, name := range []string{"http_request", "http_request_with_method", "detailed_http_request"} {
		_, ok := tb.Get(name)
		assert.True(t, ok, name)
	}
	assert.Len(t, tb.Tools(), 3)
}

func TestHTTPRequest_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "http_request", mustJSON(t, requestInput{URL: srv.URL}))
	assert.False(t, result.IsError, result.Content)
	assert.JSONEq(t, `{"ok":true}`, result.Content)
}

func TestHTTPRequest_Text(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("plain result"))
	}))
	defer srv.Close()

	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "http_request", mustJSON(t, requestInput{URL: srv.URL}))
	assert.False(t, result.IsError, result.Content)
	assert.Equal(t, "plain result", result.Content)
}

func TestHTTPRequest_BinaryBase64(t *testing.T) {
	payload := []byte{0x00, 0xff, 0x10, 0x20}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "http_request", mustJSON(t, requestInput{URL: srv.URL}))
	assert.False(t, result.IsError, result.Content)

	decoded, err := base64.StdEncoding.DecodeString(result.Content)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestHTTPRequest_MissingURL(t *testing.T) {
	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "http_request", json.RawMessage(`{}`))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "url is required")
}

// The method-only tool forwards headers, body, params, and timeout too, not
// just the method.
func TestHTTPRequestWithMethod_ForwardsAllParameters(t *testing.T) {
	var gotMethod, gotHeader, gotBody, gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Token")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotQuery = r.URL.Query().Get("page")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "http_request_with_method", mustJSON(t, requestInput{
		URL:     srv.URL,
		Method:  "put",
		Headers: map[string]string{"X-Token": "secret"},
		Body:    "update",
		Params:  map[string]any{"page": 5},
		Timeout: 10,
	}))

	assert.False(t, result.IsError, result.Content)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "secret", gotHeader)
	assert.Equal(t, "update", gotBody)
	assert.Equal(t, "5", gotQuery)
}

func TestDetailedHTTPRequest_PostJSON(t *testing.T) {
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "detailed_http_request", mustJSON(t, requestInput{
		URL:     srv.URL + "/api",
		Method:  "POST",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    map[string]any{"a": 1},
		Timeout: 10,
	}))

	assert.False(t, result.IsError, result.Content)
	assert.JSONEq(t, `{"ok":true}`, result.Content)
	assert.JSONEq(t, `{"a":1}`, string(gotBody))
}

func TestDetailedHTTPRequest_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "detailed_http_request", mustJSON(t, requestInput{
		URL:    srv.URL + "/api",
		Method: "POST",
	}))

	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "HTTP error 500")
}

func TestHandleRequest_InvalidInput(t *testing.T) {
	tb := newTestToolset().Tools()

	result := tb.Call(context.Background(), "http_request", json.RawMessage(`{"url":42}`))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "invalid input")
}
