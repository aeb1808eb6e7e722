package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

type fakeThemes struct{}

func (fakeThemes) List() []domain.Theme {
	return []domain.Theme{{ID: "gradient_blue"}}
}

func (fakeThemes) Get(id string) (domain.Theme, error) {
	if id != "gradient_blue" {
		return domain.Theme{}, domain.ErrUnknownTheme
	}
	return domain.Theme{ID: "gradient_blue", Start: domain.RGB{R: 25, G: 118, B: 210}}, nil
}

func TestApplyLanguageChoice(t *testing.T) {
	state := &domain.SessionState{Step: StepLanguage}

	require.NoError(t, applyLanguageChoice(state, "lang_uz"))
	assert.Equal(t, domain.LanguageUz, state.Request.Language)
	assert.Equal(t, StepSlideCount, state.Step)
}

func TestApplyLanguageChoice_UnknownCode(t *testing.T) {
	state := &domain.SessionState{Step: StepLanguage}
	before := *state

	err := applyLanguageChoice(state, "lang_fr")
	require.ErrorIs(t, err, domain.ErrInvalidChoice)
	assert.Equal(t, before, *state)
}

func TestApplySlideCountChoice(t *testing.T) {
	state := &domain.SessionState{Step: StepSlideCount}

	count, err := applySlideCountChoice(state, "slides_10")
	require.NoError(t, err)
	assert.Equal(t, 10, count)
	assert.Equal(t, 10, state.Request.SlideCount)
	assert.Equal(t, StepTheme, state.Step)
}

func TestApplySlideCountChoice_RejectsArbitraryCounts(t *testing.T) {
	for _, data := range []string{"slides_7", "slides_0", "slides_-5", "slides_abc"} {
		state := &domain.SessionState{Step: StepSlideCount}
		before := *state

		_, err := applySlideCountChoice(state, data)
		require.ErrorIs(t, err, domain.ErrInvalidChoice, data)
		assert.Equal(t, before, *state, data)
	}
}

func TestApplyThemeChoice(t *testing.T) {
	state := &domain.SessionState{Step: StepTheme}

	theme, err := applyThemeChoice(state, fakeThemes{}, "bg_gradient_blue")
	require.NoError(t, err)
	assert.Equal(t, "gradient_blue", theme.ID)
	assert.Equal(t, "gradient_blue", state.Request.ThemeID)
	assert.Equal(t, StepTopic, state.Step)
}

func TestApplyThemeChoice_UnknownTheme(t *testing.T) {
	state := &domain.SessionState{Step: StepTheme}
	before := *state

	_, err := applyThemeChoice(state, fakeThemes{}, "bg_gradient_lava")
	require.ErrorIs(t, err, domain.ErrInvalidChoice)
	assert.Equal(t, before, *state)
}

func TestApplyTopic(t *testing.T) {
	state := &domain.SessionState{Step: StepTopic}

	require.NoError(t, applyTopic(state, "  Sun'iy intellekt tarixi  "))
	assert.Equal(t, "Sun'iy intellekt tarixi", state.Request.Topic)
}

func TestApplyTopic_RejectsBlank(t *testing.T) {
	state := &domain.SessionState{Step: StepTopic}
	before := *state

	err := applyTopic(state, "   ")
	require.ErrorIs(t, err, domain.ErrInvalidChoice)
	assert.Equal(t, before, *state)
}

// A stale callback, e.g. a tap on an old keyboard after the session moved
// on, must leave the session exactly as it was.
func TestTransitions_WrongStepLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name  string
		step  string
		apply func(state *domain.SessionState) error
	}{
		{"language on topic step", StepTopic, func(s *domain.SessionState) error {
			return applyLanguageChoice(s, "lang_en")
		}},
		{"slides on language step", StepLanguage, func(s *domain.SessionState) error {
			_, err := applySlideCountChoice(s, "slides_5")
			return err
		}},
		{"theme on slide count step", StepSlideCount, func(s *domain.SessionState) error {
			_, err := applyThemeChoice(s, fakeThemes{}, "bg_gradient_blue")
			return err
		}},
		{"topic on theme step", StepTheme, func(s *domain.SessionState) error {
			return applyTopic(s, "any topic")
		}},
		{"anything on empty session", "", func(s *domain.SessionState) error {
			return applyLanguageChoice(s, "lang_uz")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.SessionState{
				Step: tt.step,
				Request: domain.DeckRequest{
					UserID:   42,
					Language: domain.LanguageUz,
				},
			}
			before := *state

			require.ErrorIs(t, tt.apply(state), domain.ErrInvalidChoice)
			assert.Equal(t, before, *state)
		})
	}
}
