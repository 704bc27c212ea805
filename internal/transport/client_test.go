package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megbroc7/acta-ai-sub002/internal/sse"
	"github.com/megbroc7/acta-ai-sub002/internal/types"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, serverURL string, tokens TokenSource) *Client {
	t.Helper()
	client, err := NewClient(Config{BaseURL: serverURL, Tokens: tokens})
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: ""})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestPostJSON_Success(t *testing.T) {
	var gotAuth string
	var gotBody types.TitleRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.TitleResponse{
			Titles: []string{"a", "b", "c", "d", "e"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens("tok-123"))

	var resp types.TitleResponse
	err := client.PostJSON(context.Background(), "/titles", types.TitleRequest{Topic: "go testing"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "go testing", gotBody.Topic)
	assert.Len(t, resp.Titles, 5)
}

func TestPostJSON_AnonymousWhenNoToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}")) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens(""))
	require.NoError(t, client.PostJSON(context.Background(), "/x", struct{}{}, nil))
	assert.Empty(t, gotAuth)
}

func TestPostJSON_ErrorDetailSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "topic is required"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.PostJSON(context.Background(), "/titles", struct{}{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "topic is required", apiErr.Detail)
}

func TestPostJSON_StatusTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	err := client.PostJSON(context.Background(), "/titles", struct{}{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Detail)
}

func TestOpenStream_DeliversLiveEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-stream", r.Header.Get("Authorization"))
		writer, err := sse.NewWriter(w)
		require.NoError(t, err)
		require.NoError(t, writer.WriteEvent("progress", types.ProgressEvent{Stage: "outline", Step: 1, Total: 3}))
		require.NoError(t, writer.WriteEvent("complete", map[string]string{"content_html": "<p>hi</p>", "content_markdown": "hi"}))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, staticTokens("tok-stream"))
	stream, err := client.OpenStream(context.Background(), "/content", struct{}{})
	require.NoError(t, err)
	defer stream.Close()

	raw, err := io.ReadAll(stream)
	require.NoError(t, err)

	dec := sse.NewDecoder()
	records := dec.Push(raw)
	require.NoError(t, dec.Finish())
	require.Len(t, records, 2)
	assert.Equal(t, "progress", records[0].Event)
	assert.Equal(t, "complete", records[1].Event)
}

func TestOpenStream_FailsFastOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "authentication required"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	_, err := client.OpenStream(context.Background(), "/content", struct{}{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "authentication required", apiErr.Detail)
}

func TestGenerateTitles_ValidatesRequest(t *testing.T) {
	client := newTestClient(t, "http://localhost:1", nil)
	_, err := client.GenerateTitles(context.Background(), types.TitleRequest{})
	assert.Error(t, err)
}
