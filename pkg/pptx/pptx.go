// Package pptx writes PowerPoint (.pptx) files containing absolutely
// positioned pictures and text boxes. It covers exactly what a generated
// slide deck needs: a fixed page size, per-slide pictures embedded from
// memory, and word-wrapped styled paragraphs.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// EMUPerInch is the OOXML English Metric Unit scale.
const EMUPerInch = 914400

// Presentation is an in-memory deck. Slides keep their insertion order;
// within a slide, shapes stack in insertion order (first is rearmost).
type Presentation struct {
	widthEMU  int64
	heightEMU int64
	slides    []*Slide
}

// Slide is one page of the deck.
type Slide struct {
	shapes []shape
}

type shape interface {
	isShape()
}

type picture struct {
	data       []byte
	x, y, w, h int64
}

func (*picture) isShape() {}

// TextBox is a fixed-position text region with automatic word wrap.
type TextBox struct {
	x, y, w, h int64
	paragraphs []Paragraph
}

func (*TextBox) isShape() {}

// Paragraph is a single styled paragraph inside a text box.
type Paragraph struct {
	Text          string
	SizePt        float64
	Bold          bool
	Color         string // RRGGBB hex, empty means inherited
	SpaceBeforePt float64
	SpaceAfterPt  float64
}

// New creates an empty presentation with the given page size in inches.
func New(widthInches, heightInches float64) *Presentation {
	return &Presentation{
		widthEMU:  inchesToEMU(widthInches),
		heightEMU: inchesToEMU(heightInches),
	}
}

// AddSlide appends a blank slide and returns it.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{}
	p.slides = append(p.slides, s)
	return s
}

// SlideCount reports the number of slides added so far.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// AddPicture places PNG data at the given position and size in inches.
func (s *Slide) AddPicture(data []byte, x, y, w, h float64) {
	s.shapes = append(s.shapes, &picture{
		data: data,
		x:    inchesToEMU(x),
		y:    inchesToEMU(y),
		w:    inchesToEMU(w),
		h:    inchesToEMU(h),
	})
}

// AddTextBox places an empty text box at the given position and size in
// inches and returns it for paragraph insertion.
func (s *Slide) AddTextBox(x, y, w, h float64) *TextBox {
	tb := &TextBox{
		x: inchesToEMU(x),
		y: inchesToEMU(y),
		w: inchesToEMU(w),
		h: inchesToEMU(h),
	}
	s.shapes = append(s.shapes, tb)
	return tb
}

// AddParagraph appends one paragraph to the text box.
func (tb *TextBox) AddParagraph(p Paragraph) {
	tb.paragraphs = append(tb.paragraphs, p)
}

// Save writes the deck to path, replacing any existing file.
func (p *Presentation) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pptx: create %s: %w", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the deck as a pptx container to w.
func (p *Presentation) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	// Media parts are numbered globally across slides; each slide records
	// the relationship IDs its pictures resolve to.
	mediaIndex := 0
	slideMedia := make([][]mediaRef, len(p.slides))
	for i, slide := range p.slides {
		for _, sh := range slide.shapes {
			if pic, ok := sh.(*picture); ok {
				mediaIndex++
				slideMedia[i] = append(slideMedia[i], mediaRef{index: mediaIndex, pic: pic})
			}
		}
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", p.contentTypesXML()},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRelsXML()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for i, slide := range p.slides {
		parts = append(parts,
			struct {
				name    string
				content string
			}{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(slide, slideMedia[i])},
			struct {
				name    string
				content string
			}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsXML(slideMedia[i])},
		)
	}

	for _, part := range parts {
		if err := writeZipEntry(zw, part.name, []byte(part.content)); err != nil {
			return err
		}
	}
	for _, media := range slideMedia {
		for _, ref := range media {
			name := fmt.Sprintf("ppt/media/image%d.png", ref.index)
			if err := writeZipEntry(zw, name, ref.pic.data); err != nil {
				return err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("pptx: finalize container: %w", err)
	}
	return nil
}

type mediaRef struct {
	index int
	pic   *picture
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("pptx: create part %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("pptx: write part %s: %w", name, err)
	}
	return nil
}

func inchesToEMU(v float64) int64 {
	return int64(v * EMUPerInch)
}
