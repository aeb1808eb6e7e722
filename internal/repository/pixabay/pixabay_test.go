package pixabay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

func testRepo(server *httptest.Server) *Repo {
	return &Repo{
		Path:   server.URL + "/api/",
		APIKey: "test-key",
		Client: server.Client(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestFindImage_DownloadsTopHit(t *testing.T) {
	var searchQuery string
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		searchQuery = r.URL.RawQuery
		fmt.Fprintf(w, `{"hits": [{"webformatURL": "%s/image/first.jpg"}, {"webformatURL": "%s/image/second.jpg"}]}`, server.URL, server.URL)
	})
	mux.HandleFunc("/image/first.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("first-image-bytes"))
	})
	mux.HandleFunc("/image/second.jpg", func(w http.ResponseWriter, r *http.Request) {
		t.Error("second hit must not be downloaded")
	})

	repo := testRepo(server)

	image, err := repo.FindImage(context.Background(), "mountain lake")
	require.NoError(t, err)
	assert.Equal(t, []byte("first-image-bytes"), image)

	assert.Contains(t, searchQuery, "key=test-key")
	assert.Contains(t, searchQuery, "q=mountain+lake")
	assert.Contains(t, searchQuery, "image_type=photo")
	assert.Contains(t, searchQuery, "per_page=3")
	assert.Contains(t, searchQuery, "safesearch=true")
}

func TestFindImage_NoHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": [], "total": 0}`))
	}))
	defer server.Close()

	_, err := testRepo(server).FindImage(context.Background(), "qwertyuiop")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestFindImage_SearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testRepo(server).FindImage(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestFindImage_MalformedSearchResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := testRepo(server).FindImage(context.Background(), "anything")
	require.Error(t, err)
}
