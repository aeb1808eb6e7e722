package telegram

import (
	"context"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

type StateProvider interface {
	SetState(ctx context.Context, chatID int64, state *domain.SessionState) error
	GetStateByID(ctx context.Context, chatID int64) *domain.SessionState
	ResetUserState(ctx context.Context, chatID int64)
	GetCorrelationID(ctx context.Context, chatID int64) string
}

type ContentPlanner interface {
	Synthesize(ctx context.Context, topic string, lang domain.Language, slideCount int) ([]domain.SlideSpec, error)
}

type DeckBuilder interface {
	Compose(ctx context.Context, specs []domain.SlideSpec, theme domain.Theme, userID int64) (string, error)
}

type ThemeProvider interface {
	List() []domain.Theme
	Get(id string) (domain.Theme, error)
}

type PreviewRenderer func(theme domain.Theme) ([]byte, error)
