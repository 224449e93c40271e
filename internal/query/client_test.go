package query

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientQuery_Success(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, Path, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"Hi!"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL+"/", 0, nil)
	reply, err := client.Query(context.Background(), "Hello")

	require.NoError(t, err)
	assert.Equal(t, "Hi!", reply)
	assert.Equal(t, map[string]any{"query": "Hello"}, gotBody)
}

func TestHTTPClientQuery_EmptyResponseIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	}))
	defer srv.Close()

	reply, err := NewHTTPClient(srv.URL, 0, nil).Query(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestHTTPClientQuery_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"response":"nope"}`))
		},
		"not found": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"malformed body": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"missing field": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"answer":"Y"}`))
		},
		"wrong type": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"response":42}`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, 0, nil).Query(context.Background(), "X")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrQueryFailed)
		})
	}
}

func TestHTTPClientQuery_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, time.Second, nil).Query(context.Background(), "X")
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestMockClient_RecordsQueries(t *testing.T) {
	m := &MockClient{Response: "ok"}
	_, _ = m.Query(context.Background(), "a")
	_, _ = m.Query(context.Background(), "b")
	assert.Equal(t, []string{"a", "b"}, m.Queries())
}
