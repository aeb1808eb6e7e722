package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const twoSlidesJSON = `[
	{"title": "Kirish", "content": "• Birinchi nuqta.\n• Ikkinchi nuqta.", "image_search": "artificial intelligence"},
	{"title": "Xulosa", "content": "• Uchinchi nuqta.\n• To'rtinchi nuqta.", "image_search": "future technology"}
]`

func TestSynthesize_ParsesFencedOutput(t *testing.T) {
	provider := &fakeProvider{text: "```json\n" + twoSlidesJSON + "\n```"}
	s := NewSynthesizer(provider, discardLogger())

	specs, err := s.Synthesize(context.Background(), "Sun'iy intellekt", domain.LanguageUz, 2)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "Kirish", specs[0].Title)
	assert.Equal(t, []string{"Birinchi nuqta.", "Ikkinchi nuqta."}, specs[0].Bullets)
	assert.Equal(t, "artificial intelligence", specs[0].ImageSearch)
	assert.Equal(t, "Xulosa", specs[1].Title)
}

func TestSynthesize_EverySlideComplete(t *testing.T) {
	provider := &fakeProvider{text: twoSlidesJSON}
	s := NewSynthesizer(provider, discardLogger())

	specs, err := s.Synthesize(context.Background(), "anything", domain.LanguageEn, 2)
	require.NoError(t, err)
	for _, spec := range specs {
		assert.NotEmpty(t, spec.Title)
		assert.NotEmpty(t, spec.Bullets)
		assert.NotEmpty(t, spec.ImageSearch)
	}
}

func TestSynthesize_DefaultsEmptyImageSearch(t *testing.T) {
	provider := &fakeProvider{text: `[{"title": "T", "content": "• bullet", "image_search": ""}]`}
	s := NewSynthesizer(provider, discardLogger())

	specs, err := s.Synthesize(context.Background(), "topic", domain.LanguageEn, 1)
	require.NoError(t, err)
	assert.Equal(t, "abstract", specs[0].ImageSearch)
}

func TestSynthesize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"provider error", &fakeProvider{err: errors.New("deadline exceeded")}},
		{"malformed json", &fakeProvider{text: "here are your slides: [{..."}},
		{"wrong count", &fakeProvider{text: twoSlidesJSON}},
		{"missing title", &fakeProvider{text: `[{"title": "", "content": "• x", "image_search": "y"}]`}},
		{"missing content", &fakeProvider{text: `[{"title": "T", "content": "", "image_search": "y"}]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(tt.provider, discardLogger())

			wantCount := 1
			if tt.name == "wrong count" {
				wantCount = 3
			}

			specs, err := s.Synthesize(context.Background(), "topic", domain.LanguageUz, wantCount)
			require.ErrorIs(t, err, domain.ErrGenerationFailed)
			assert.Nil(t, specs, "a failed synthesis must never return a partial sequence")
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFences("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFences("```\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFences("  [1]  "))
}
