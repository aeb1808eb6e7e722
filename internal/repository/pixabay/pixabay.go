package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/prometheus"
)

// maxImageBytes caps a single downloaded illustration.
const maxImageBytes = 10 << 20

type Repo struct {
	Path   string
	APIKey string
	Client *http.Client
	log    *slog.Logger
}

func NewRepo(config *configs.Config, log *slog.Logger) *Repo {
	return &Repo{
		APIKey: config.PB.APIKey,
		Path:   config.PB.Path,
		Client: &http.Client{
			Timeout: config.PB.Timeout,
		},
		log: log,
	}
}

// FindImage searches Pixabay for the phrase and downloads the top hit.
// Returns domain.ErrRecordNotFound when the search yields no results.
func (repo *Repo) FindImage(ctx context.Context, phrase string) ([]byte, error) {
	const op = "pixabay.FindImage"

	query := url.Values{}
	query.Set("key", repo.APIKey)
	query.Set("q", phrase)
	query.Set("image_type", "photo")
	query.Set("per_page", "3")
	query.Set("safesearch", "true")

	resp, err := repo.doRequest(ctx, repo.Path+"?"+query.Encode())
	if err != nil {
		prometheus.ProviderFailures.WithLabelValues("pixabay").Inc()
		return nil, fmt.Errorf("%s: search %q: %w", op, phrase, err)
	}

	var searchResult struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}
	if err = json.Unmarshal(resp, &searchResult); err != nil {
		return nil, fmt.Errorf("%s: decode search response: %w", op, err)
	}

	if len(searchResult.Hits) == 0 {
		return nil, fmt.Errorf("%s: %q: %w", op, phrase, domain.ErrRecordNotFound)
	}

	image, err := repo.doRequest(ctx, searchResult.Hits[0].WebformatURL)
	if err != nil {
		prometheus.ProviderFailures.WithLabelValues("pixabay").Inc()
		return nil, fmt.Errorf("%s: download %q: %w", op, phrase, err)
	}
	return image, nil
}

func (repo *Repo) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := repo.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}
	return body, nil
}
