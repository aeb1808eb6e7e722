package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

// Session steps. A callback or message only applies when the session is on
// the matching step; anything else is rejected without touching the state.
const (
	StepLanguage   = "language"
	StepSlideCount = "slide_count"
	StepTheme      = "theme"
	StepTopic      = "topic"
)

const (
	callbackStats  = "show_stats"
	prefixLanguage = "lang_"
	prefixSlides   = "slides_"
	prefixTheme    = "bg_"
)

func applyLanguageChoice(state *domain.SessionState, data string) error {
	const op = "telegram.applyLanguageChoice"

	if state.Step != StepLanguage {
		return fmt.Errorf("%s: step %q: %w", op, state.Step, domain.ErrInvalidChoice)
	}

	var lang domain.Language
	switch data {
	case prefixLanguage + string(domain.LanguageUz):
		lang = domain.LanguageUz
	case prefixLanguage + string(domain.LanguageEn):
		lang = domain.LanguageEn
	default:
		return fmt.Errorf("%s: %q: %w", op, data, domain.ErrInvalidChoice)
	}

	state.Request.Language = lang
	state.Step = StepSlideCount
	return nil
}

func applySlideCountChoice(state *domain.SessionState, data string) (int, error) {
	const op = "telegram.applySlideCountChoice"

	if state.Step != StepSlideCount {
		return 0, fmt.Errorf("%s: step %q: %w", op, state.Step, domain.ErrInvalidChoice)
	}

	count, err := strconv.Atoi(strings.TrimPrefix(data, prefixSlides))
	if err != nil || !domain.SlideCountAllowed(count) {
		return 0, fmt.Errorf("%s: %q: %w", op, data, domain.ErrInvalidChoice)
	}

	state.Request.SlideCount = count
	state.Step = StepTheme
	return count, nil
}

func applyThemeChoice(state *domain.SessionState, themes ThemeProvider, data string) (domain.Theme, error) {
	const op = "telegram.applyThemeChoice"

	if state.Step != StepTheme {
		return domain.Theme{}, fmt.Errorf("%s: step %q: %w", op, state.Step, domain.ErrInvalidChoice)
	}

	theme, err := themes.Get(strings.TrimPrefix(data, prefixTheme))
	if err != nil {
		return domain.Theme{}, fmt.Errorf("%s: %q: %w", op, data, domain.ErrInvalidChoice)
	}

	state.Request.ThemeID = theme.ID
	state.Step = StepTopic
	return theme, nil
}

func applyTopic(state *domain.SessionState, text string) error {
	const op = "telegram.applyTopic"

	if state.Step != StepTopic {
		return fmt.Errorf("%s: step %q: %w", op, state.Step, domain.ErrInvalidChoice)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: empty topic: %w", op, domain.ErrInvalidChoice)
	}

	state.Request.Topic = strings.TrimSpace(text)
	return nil
}
