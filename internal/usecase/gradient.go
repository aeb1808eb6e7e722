package usecase

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

const (
	previewWidth  = 400
	previewHeight = 250
)

// RenderGradient paints a vertical two-color gradient: row y blends
// start->end linearly with integer truncation, every pixel in a row equal.
func RenderGradient(width, height int, theme domain.Theme) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		ratio := float64(y) / float64(height)
		row := color.RGBA{
			R: uint8(float64(theme.Start.R)*(1-ratio) + float64(theme.End.R)*ratio),
			G: uint8(float64(theme.Start.G)*(1-ratio) + float64(theme.End.G)*ratio),
			B: uint8(float64(theme.Start.B)*(1-ratio) + float64(theme.End.B)*ratio),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, row)
		}
	}
	return img
}

// RenderPreview produces the small labeled thumbnail offered during theme
// selection, as PNG bytes. The label is drawn with a bitmap face, so runes
// outside its coverage (emoji) are simply not painted.
func RenderPreview(theme domain.Theme) ([]byte, error) {
	img := RenderGradient(previewWidth, previewHeight, theme)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(20, previewHeight/2),
	}
	drawer.DrawString(theme.Label)

	return EncodePNG(img)
}

// EncodePNG serializes an image to in-memory PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	const op = "usecase.EncodePNG"

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
