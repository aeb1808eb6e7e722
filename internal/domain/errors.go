package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateAccount  = errors.New("account already registered")
	ErrUnregisteredUser  = errors.New("user is not registered")
	ErrUnknownTheme      = errors.New("unknown theme")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrGenerationFailed  = errors.New("content generation failed")
	ErrCompositionFailed = errors.New("deck composition failed")
)
