package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// Synthesizer turns a topic into a validated sequence of slide specs using
// the generative-text provider. It never returns a partial sequence: any
// parse or validation problem is a generation failure as a whole.
type Synthesizer struct {
	provider domain.ContentProvider
	log      *slog.Logger
}

func NewSynthesizer(provider domain.ContentProvider, log *slog.Logger) *Synthesizer {
	return &Synthesizer{provider: provider, log: log}
}

type rawSlide struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImageSearch string `json:"image_search"`
}

func (s *Synthesizer) Synthesize(ctx context.Context, topic string, lang domain.Language, slideCount int) ([]domain.SlideSpec, error) {
	const op = "usecase.Synthesizer.Synthesize"

	raw, err := s.provider.GenerateText(ctx, buildPrompt(topic, lang, slideCount))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, domain.ErrGenerationFailed, err)
	}

	var slides []rawSlide
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &slides); err != nil {
		s.log.DebugContext(ctx, "unparseable provider output", "output", raw)
		return nil, fmt.Errorf("%s: parse response: %w: %v", op, domain.ErrGenerationFailed, err)
	}

	if len(slides) != slideCount {
		return nil, fmt.Errorf("%s: expected %d slides, got %d: %w",
			op, slideCount, len(slides), domain.ErrGenerationFailed)
	}

	specs := make([]domain.SlideSpec, 0, slideCount)
	for i, slide := range slides {
		title := strings.TrimSpace(slide.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: slide %d: empty title: %w", op, i+1, domain.ErrGenerationFailed)
		}

		bullets := splitBullets(slide.Content)
		if len(bullets) == 0 {
			return nil, fmt.Errorf("%s: slide %d: empty content: %w", op, i+1, domain.ErrGenerationFailed)
		}

		phrase := strings.TrimSpace(slide.ImageSearch)
		if phrase == "" {
			phrase = "abstract"
		}

		specs = append(specs, domain.SlideSpec{
			Title:       title,
			Bullets:     bullets,
			ImageSearch: phrase,
		})
	}
	return specs, nil
}

func buildPrompt(topic string, lang domain.Language, slideCount int) string {
	langName := "O'zbekcha"
	if lang == domain.LanguageEn {
		langName = "English"
	}

	return fmt.Sprintf(`Sen professional prezentatsiya ustasisan.
Mavzu: "%s".
Menga %d ta slayddan iborat JUDA KENGAYTIRILGAN prezentatsiya tayyorla.
Har bir slayd: sarlavha, 6-8 ta BATAFSIL bullet point va rasm auksuli (rasm nomi).

Javobni faqat va faqat toza JSON formatida qaytar:
[
    {
        "title": "Slayd sarlavhasi",
        "content": "• Batafsil nuqta 1\n• Batafsil nuqta 2\n• Batafsil nuqta 3\n• Batafsil nuqta 4\n• Batafsil nuqta 5\n• Batafsil nuqta 6",
        "image_search": "rasm qidiruv so'zi (masalan: 'artificial intelligence')"
    },
    ...
]

Qoidalar:
- %d ta slayd bo'lsin
- Matn %s bo'lsin
- Har bir slaydda 6-8 ta BATAFSIL bullet point bo'lsin
- Har bir nuqta 1-2 ta jumla bo'lsin
- image_search qismi 2-3 so'z bo'lsin
- Faqat JSON jo'nating, boshqa hech narsa yo'q`,
		topic, slideCount, slideCount, langName)
}

// stripCodeFences removes markdown fence wrapping the provider tends to add
// around its JSON despite instructions.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func splitBullets(content string) []string {
	var bullets []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "•")
		line = strings.TrimPrefix(line, "-")
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
