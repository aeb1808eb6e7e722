package domain

// SessionState is one user's transient progress through the guided flow.
// Exactly one session exists per chat; /start always replaces it.
type SessionState struct {
	CorrelationID string
	Step          string
	Request       DeckRequest
}
