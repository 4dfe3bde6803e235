package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/tayninh-assistant/server/internal/core/error"
)

func newTestClient(url string) *Client {
	cfg := &Config{URL: url, Model: "qwen2:1.5b", Temperature: 0.4, Timeout: 5}
	return cfg.New()
}

func collect(t *testing.T, c *Client, prompt string) (string, error) {
	t.Helper()
	stream, err := c.Generate(context.Background(), prompt)
	require.NoError(t, err)
	defer stream.Close()

	var b strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
		b.WriteString(chunk)
	}
}

func TestGenerateAccumulatesFragments(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/x-ndjson")
		io.WriteString(w, `{"response":"Xin "}`+"\n")
		io.WriteString(w, `{"response":"chào"}`+"\n")
		io.WriteString(w, `{"done":true,"eval_count":2}`+"\n")
	}))
	defer srv.Close()

	got, err := collect(t, newTestClient(srv.URL), "một prompt")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", got)

	assert.Equal(t, "qwen2:1.5b", gotReq.Model)
	assert.Equal(t, "một prompt", gotReq.Prompt)
	assert.True(t, gotReq.Stream)
	assert.Equal(t, 0.4, gotReq.Options["temperature"])
}

func TestGenerateSkipsBlankLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "\n"+`{"response":"a"}`+"\n\n"+`{"response":"b"}`+"\n"+`{"done":true}`+"\n")
	}))
	defer srv.Close()

	got, err := collect(t, newTestClient(srv.URL), "p")
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestGenerateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "p")
	require.Error(t, err)

	var appErr *errx.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errx.BackendErrorMessage, appErr.Message)
}

func TestGenerateConnectionRefused(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1").Generate(context.Background(), "p")
	assert.Error(t, err)
}

func TestGenerateMalformedFragment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":"một phần"}`+"\n")
		io.WriteString(w, "not json\n")
	}))
	defer srv.Close()

	got, err := collect(t, newTestClient(srv.URL), "p")
	assert.Equal(t, "một phần", got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), errx.BackendErrorMessage)
}
