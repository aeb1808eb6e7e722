package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/pkg/pptx"
)

// Slide geometry in page inches, shared by every deck.
const (
	pageWidth  = 10.0
	pageHeight = 7.5

	backgroundPxWidth  = 1280
	backgroundPxHeight = 960

	titleFontPt   = 40
	contentFontPt = 14
	textColor     = "FFFFFF"
)

// IllustrationSource yields at most one image per phrase, best-effort.
type IllustrationSource interface {
	Fetch(ctx context.Context, phrase string) ([]byte, bool)
}

// DeckComposer renders slide specs into a .pptx artifact. Composition is
// deterministic apart from illustration availability; a missing
// illustration degrades one slide, any other failure discards the whole
// artifact.
type DeckComposer struct {
	illustrations IllustrationSource
	outDir        string
	log           *slog.Logger
}

func NewDeckComposer(illustrations IllustrationSource, outDir string, log *slog.Logger) *DeckComposer {
	return &DeckComposer{
		illustrations: illustrations,
		outDir:        outDir,
		log:           log,
	}
}

// ArtifactPath is the deterministic output location for a user's deck. One
// deck per user is in flight at a time; a concurrent duplicate request
// overwrites the earlier file (last writer wins).
func (c *DeckComposer) ArtifactPath(userID int64) string {
	return filepath.Join(c.outDir, fmt.Sprintf("presentation_%d.pptx", userID))
}

func (c *DeckComposer) Compose(ctx context.Context, specs []domain.SlideSpec, theme domain.Theme, userID int64) (string, error) {
	const op = "usecase.DeckComposer.Compose"

	deck := pptx.New(pageWidth, pageHeight)

	for i, spec := range specs {
		if err := c.composeSlide(ctx, deck.AddSlide(), spec, theme); err != nil {
			return "", fmt.Errorf("%s: slide %d: %w: %v", op, i+1, domain.ErrCompositionFailed, err)
		}
	}

	path := c.ArtifactPath(userID)
	tmp := path + ".tmp"
	if err := deck.Save(tmp); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%s: %w: %v", op, domain.ErrCompositionFailed, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%s: %w: %v", op, domain.ErrCompositionFailed, err)
	}
	return path, nil
}

func (c *DeckComposer) composeSlide(ctx context.Context, slide *pptx.Slide, spec domain.SlideSpec, theme domain.Theme) error {
	background, err := EncodePNG(RenderGradient(backgroundPxWidth, backgroundPxHeight, theme))
	if err != nil {
		return err
	}
	slide.AddPicture(background, 0, 0, pageWidth, pageHeight)

	title := slide.AddTextBox(0.3, 0.2, 9.4, 0.8)
	title.AddParagraph(pptx.Paragraph{
		Text:   spec.Title,
		SizePt: titleFontPt,
		Bold:   true,
		Color:  textColor,
	})

	// Decorative only: absence just leaves the right half empty.
	if illustration, ok := c.illustrations.Fetch(ctx, spec.ImageSearch); ok {
		slide.AddPicture(illustration, 6, 1.1, 3.8, 2.8)
	}

	content := slide.AddTextBox(0.3, 1.1, 5.5, 6)
	for _, bullet := range spec.Bullets {
		content.AddParagraph(pptx.Paragraph{
			Text:          "• " + bullet,
			SizePt:        contentFontPt,
			Color:         textColor,
			SpaceBeforePt: 2,
			SpaceAfterPt:  6,
		})
	}
	return nil
}
