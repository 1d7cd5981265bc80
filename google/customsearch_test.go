package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fwojciec/papermill"
	"github.com/fwojciec/papermill/google"
	"github.com/fwojciec/papermill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noLinks() *mock.LinkResolver {
	return &mock.LinkResolver{
		ResolveLinksFn: func(context.Context, string) ([]string, error) { return nil, nil },
	}
}

func newConnector(t *testing.T, endpoint string, resolver papermill.LinkResolver) *google.CustomSearchConnector {
	t.Helper()
	c, err := google.NewCustomSearchConnector(context.Background(), google.Config{
		APIKey:   "key",
		EngineID: "engine",
		PageSize: 10,
		Endpoint: endpoint,
	}, resolver)
	require.NoError(t, err)
	return c
}

func TestCustomSearchConnector_Search(t *testing.T) {
	t.Parallel()

	t.Run("sends one-based start index for page three", func(t *testing.T) {
		t.Parallel()

		var query url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items": []}`))
		}))
		defer server.Close()

		got, err := newConnector(t, server.URL, noLinks()).Search(context.Background(), "rocket engines", 3)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, "21", query.Get("start"))
		assert.Equal(t, "10", query.Get("num"))
		assert.Equal(t, "engine", query.Get("cx"))
		assert.Equal(t, "rocket engines", query.Get("q"))
		assert.Equal(t, "key", query.Get("key"))
	})

	t.Run("uses pdf results directly and resolves landing pages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items": [
				{"title": "Direct Paper", "link": "https://uni.example/files/paper.pdf", "snippet": "a  b"},
				{"title": "Landing", "link": "https://uni.example/landing"}
			]}`))
		}))
		defer server.Close()

		resolver := &mock.LinkResolver{
			ResolveLinksFn: func(_ context.Context, landingURL string) ([]string, error) {
				assert.Equal(t, "https://uni.example/landing", landingURL)
				return []string{"https://uni.example/x.pdf"}, nil
			},
		}

		got, err := newConnector(t, server.URL, resolver).Search(context.Background(), "rockets", 1)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "https://uni.example/files/paper.pdf", got[0].PayloadURL)
		assert.Equal(t, "a b", got[0].Abstract)
		assert.Equal(t, "https://uni.example/x.pdf", got[1].PayloadURL)
		assert.Equal(t, papermill.SourceKindSearchResult, got[1].SourceKind)
	})

	t.Run("returns empty list when no items remain", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"searchInformation": {"totalResults": "0"}}`))
		}))
		defer server.Close()

		got, err := newConnector(t, server.URL, noLinks()).Search(context.Background(), "zzz", 5)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("does not query past the result limit", func(t *testing.T) {
		t.Parallel()

		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		got, err := newConnector(t, server.URL, noLinks()).Search(context.Background(), "rockets", 11)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.False(t, called)
	})

	t.Run("maps api errors to http status errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
		}))
		defer server.Close()

		_, err := newConnector(t, server.URL, noLinks()).Search(context.Background(), "rockets", 1)

		require.Error(t, err)
		assert.Equal(t, papermill.EHTTPSTATUS, papermill.ErrorCode(err))
		assert.Equal(t, http.StatusForbidden, papermill.HTTPStatus(err))
	})

	t.Run("rejects page zero", func(t *testing.T) {
		t.Parallel()

		_, err := newConnector(t, "http://127.0.0.1:1", noLinks()).Search(context.Background(), "rockets", 0)

		assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
	})
}

func TestNewCustomSearchConnector(t *testing.T) {
	t.Parallel()

	_, err := google.NewCustomSearchConnector(context.Background(), google.Config{APIKey: "k"}, noLinks())

	assert.Equal(t, papermill.EINVALID, papermill.ErrorCode(err))
}
