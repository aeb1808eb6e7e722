package domain

import "context"

// AccountRepository is the persistent account store. Counter updates must be
// atomic per user record.
type AccountRepository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (Account, error)
	Create(ctx context.Context, telegramID int64, profile Profile) (Account, error)
	IncrementPresentations(ctx context.Context, accountID int64, slideCount int) error
	RecordPresentation(ctx context.Context, accountID int64, req DeckRequest) error
	// RecordActivity accepts accountID 0 for events with no known account.
	RecordActivity(ctx context.Context, accountID int64, kind, description string) error
	Statistics(ctx context.Context, accountID int64) (Statistics, error)
}

// ContentProvider is the generative-text backend behind the synthesizer.
type ContentProvider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageRepository finds one image for a search phrase. Implementations
// return ErrRecordNotFound when the search yields nothing.
type ImageRepository interface {
	FindImage(ctx context.Context, phrase string) ([]byte, error)
}
