package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/prometheus"
)

// Repo is the Gemini-backed content provider.
type Repo struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func NewRepo(ctx context.Context, config *configs.Config, log *slog.Logger) (*Repo, error) {
	const op = "gemini.NewRepo"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GM.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Repo{
		client:  client,
		model:   config.GM.Model,
		timeout: config.GM.Timeout,
		log:     log,
	}, nil
}

// GenerateText sends one prompt and returns the raw response text. The call
// is bounded by the configured timeout so a stuck request cannot wedge the
// caller's session.
func (repo *Repo) GenerateText(ctx context.Context, prompt string) (string, error) {
	const op = "gemini.GenerateText"

	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	resp, err := repo.client.Models.GenerateContent(ctx, repo.model, genai.Text(prompt), nil)
	if err != nil {
		prometheus.ProviderFailures.WithLabelValues("gemini").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	text := resp.Text()
	if text == "" {
		prometheus.ProviderFailures.WithLabelValues("gemini").Inc()
		return "", fmt.Errorf("%s: empty response", op)
	}
	return text, nil
}
