package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fwojciec/papermill"
	pmhttp "github.com/fwojciec/papermill/http"
	"github.com/fwojciec/papermill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPIConnector_Search(t *testing.T) {
	t.Parallel()

	t.Run("expands landing pages into pdf candidates", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"organic_results": [
				{"position": 0, "title": "Rocket Science", "link": "https://uni.example/paper", "result_id": "r1"},
				{"position": 1, "title": "Direct", "link": "https://uni.example/direct.pdf"},
				{"position": 2, "title": "Citation only"}
			]}`))
		}))
		defer server.Close()

		resolver := &mock.LinkResolver{
			ResolveLinksFn: func(_ context.Context, landingURL string) ([]string, error) {
				assert.Equal(t, "https://uni.example/paper", landingURL)
				return []string{"https://uni.example/a.pdf", "https://uni.example/b.pdf"}, nil
			},
		}

		connector := pmhttp.NewSerpAPIConnector(pmhttp.NewFetcher(), resolver, pmhttp.WithEndpoint(server.URL), pmhttp.WithAPIKey("k"))

		got, err := connector.Search(context.Background(), "rockets", 1)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Rocket Science", got[0].Title)
		assert.Equal(t, "https://uni.example/a.pdf", got[0].PayloadURL)
		assert.Equal(t, "Rocket Science_1", got[1].Title)
		assert.Equal(t, "https://uni.example/b.pdf", got[1].PayloadURL)
		assert.Equal(t, "https://uni.example/direct.pdf", got[2].PayloadURL)
		assert.Equal(t, papermill.SourceKindSearchResult, got[0].SourceKind)
	})

	t.Run("sends scholar query with offset", func(t *testing.T) {
		t.Parallel()

		var query url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"organic_results": []}`))
		}))
		defer server.Close()

		connector := pmhttp.NewSerpAPIConnector(pmhttp.NewFetcher(), &mock.LinkResolver{}, pmhttp.WithEndpoint(server.URL), pmhttp.WithAPIKey("secret"))

		_, err := connector.Search(context.Background(), "graph neural networks", 3)

		require.NoError(t, err)
		assert.Equal(t, "google_scholar", query.Get("engine"))
		assert.Equal(t, "graph neural networks", query.Get("q"))
		assert.Equal(t, "20", query.Get("start"))
		assert.Equal(t, "10", query.Get("num"))
		assert.Equal(t, "secret", query.Get("api_key"))
	})

	t.Run("returns empty list when results run out", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error": "Google hasn't returned any results for this query."}`))
		}))
		defer server.Close()

		connector := pmhttp.NewSerpAPIConnector(pmhttp.NewFetcher(), &mock.LinkResolver{}, pmhttp.WithEndpoint(server.URL))

		got, err := connector.Search(context.Background(), "x", 50)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reports service errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"error": "Invalid API key."}`))
		}))
		defer server.Close()

		connector := pmhttp.NewSerpAPIConnector(pmhttp.NewFetcher(), &mock.LinkResolver{}, pmhttp.WithEndpoint(server.URL))

		_, err := connector.Search(context.Background(), "x", 1)

		require.Error(t, err)
		assert.Contains(t, papermill.ErrorMessage(err), "Invalid API key.")
	})

	t.Run("groups output under scholar", func(t *testing.T) {
		t.Parallel()

		connector := pmhttp.NewSerpAPIConnector(pmhttp.NewFetcher(), &mock.LinkResolver{})

		assert.Equal(t, "scholar", connector.Name())
		assert.Equal(t, pmhttp.ScholarSite, connector.Site())
	})
}
