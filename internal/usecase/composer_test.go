package usecase

import (
	"archive/zip"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// fakeIllustrations serves a tiny PNG for every phrase except the ones
// listed as missing.
type fakeIllustrations struct {
	missing map[string]bool
	calls   []string
}

func (f *fakeIllustrations) Fetch(ctx context.Context, phrase string) ([]byte, bool) {
	f.calls = append(f.calls, phrase)
	if f.missing[phrase] {
		return nil, false
	}
	data, err := EncodePNG(RenderGradient(4, 4, domain.Theme{End: domain.RGB{R: 255}}))
	if err != nil {
		return nil, false
	}
	return data, true
}

func testSpecs(n int) []domain.SlideSpec {
	specs := make([]domain.SlideSpec, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, domain.SlideSpec{
			Title:       fmt.Sprintf("Slide %d", i+1),
			Bullets:     []string{"First point.", "Second point."},
			ImageSearch: fmt.Sprintf("phrase %d", i+1),
		})
	}
	return specs
}

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide\d+\.xml$`)

func countSlides(t *testing.T, path string) int {
	t.Helper()
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	count := 0
	for _, file := range reader.File {
		if slidePartRe.MatchString(file.Name) {
			count++
		}
	}
	return count
}

func TestCompose_OnePagePerSpec(t *testing.T) {
	composer := NewDeckComposer(&fakeIllustrations{}, t.TempDir(), discardLogger())
	theme := domain.Theme{ID: "gradient_blue", Start: domain.RGB{R: 25, G: 118, B: 210}, End: domain.RGB{R: 66, G: 165, B: 245}}

	path, err := composer.Compose(context.Background(), testSpecs(5), theme, 42)
	require.NoError(t, err)

	assert.Equal(t, 5, countSlides(t, path))
	assert.Equal(t, "presentation_42.pptx", filepath.Base(path))
}

func TestCompose_MissingIllustrationsDoNotAbort(t *testing.T) {
	illustrations := &fakeIllustrations{missing: map[string]bool{
		"phrase 1": true,
		"phrase 3": true,
	}}
	composer := NewDeckComposer(illustrations, t.TempDir(), discardLogger())
	theme := domain.Theme{ID: "gradient_night", Start: domain.RGB{R: 33, G: 33, B: 33}, End: domain.RGB{R: 97, G: 97, B: 97}}

	path, err := composer.Compose(context.Background(), testSpecs(3), theme, 7)
	require.NoError(t, err)

	assert.Equal(t, 3, countSlides(t, path))
	assert.Equal(t, []string{"phrase 1", "phrase 2", "phrase 3"}, illustrations.calls)
}

func TestCompose_ArtifactPathIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	composer := NewDeckComposer(&fakeIllustrations{}, dir, discardLogger())

	assert.Equal(t, composer.ArtifactPath(9), composer.ArtifactPath(9))
	assert.NotEqual(t, composer.ArtifactPath(9), composer.ArtifactPath(10))

	// A second deck for the same user lands on the same path.
	theme := domain.Theme{ID: "gradient_gold", Start: domain.RGB{R: 184, G: 134, B: 11}, End: domain.RGB{R: 255, G: 215}}
	first, err := composer.Compose(context.Background(), testSpecs(1), theme, 9)
	require.NoError(t, err)
	second, err := composer.Compose(context.Background(), testSpecs(2), theme, 9)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, countSlides(t, second))
}

func TestCompose_FailureLeavesNoArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "nested")
	composer := NewDeckComposer(&fakeIllustrations{}, dir, discardLogger())
	theme := domain.Theme{ID: "gradient_pink", Start: domain.RGB{R: 233, G: 30, B: 99}, End: domain.RGB{R: 244, G: 67, B: 54}}

	_, err := composer.Compose(context.Background(), testSpecs(1), theme, 5)
	require.ErrorIs(t, err, domain.ErrCompositionFailed)
	assert.NoFileExists(t, composer.ArtifactPath(5))
	assert.NoFileExists(t, composer.ArtifactPath(5)+".tmp")
}
