package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// maxIllustrationWidth bounds the pixel width of an embedded illustration;
// wider downloads are scaled down before embedding.
const maxIllustrationWidth = 1280

// IllustrationFetcher finds a decorative image for a slide. It is strictly
// best-effort: every failure is logged and reported as absence, never as an
// error, because a deck is valid without illustrations.
type IllustrationFetcher struct {
	repo domain.ImageRepository
	log  *slog.Logger
}

func NewIllustrationFetcher(repo domain.ImageRepository, log *slog.Logger) *IllustrationFetcher {
	return &IllustrationFetcher{repo: repo, log: log}
}

// Fetch returns PNG bytes for the phrase, or ok=false when no usable image
// could be obtained.
func (f *IllustrationFetcher) Fetch(ctx context.Context, phrase string) ([]byte, bool) {
	raw, err := f.repo.FindImage(ctx, phrase)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			f.log.DebugContext(ctx, "no illustration found", "phrase", phrase)
		} else {
			f.log.WarnContext(ctx, "illustration lookup failed", "phrase", phrase, "error", err)
		}
		return nil, false
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		f.log.WarnContext(ctx, "illustration decode failed", "phrase", phrase, "error", err)
		return nil, false
	}

	img = downscale(img)

	png, err := EncodePNG(img)
	if err != nil {
		f.log.WarnContext(ctx, "illustration encode failed", "phrase", phrase, "error", err)
		return nil, false
	}
	return png, true
}

func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxIllustrationWidth {
		return img
	}

	height := bounds.Dy() * maxIllustrationWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxIllustrationWidth, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
