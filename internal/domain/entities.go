package domain

import "time"

// Language is the content language of a generated deck.
type Language string

const (
	LanguageUz Language = "uz"
	LanguageEn Language = "en"
)

// AllowedSlideCounts is the fixed set of deck sizes a user may pick.
var AllowedSlideCounts = []int{5, 8, 10, 15}

// RGB is a plain 8-bit color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Theme is a named two-color gradient background style. Themes are static
// reference data and are referenced by identifier elsewhere.
type Theme struct {
	ID    string
	Start RGB
	End   RGB
	Label string
}

// SlideSpec is the structured content of one slide before rendering.
type SlideSpec struct {
	Title       string
	Bullets     []string
	ImageSearch string
}

// DeckRequest collects the user's choices for one deck. Fields are filled
// one step at a time by the session flow, in order.
type DeckRequest struct {
	UserID     int64
	Language   Language
	SlideCount int
	ThemeID    string
	Topic      string
}

// Profile carries the registration form fields submitted via the WebApp.
type Profile struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	Gmail       string `json:"gmail" validate:"required,email,max=200"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Age         int    `json:"age" validate:"required,gte=7,lte=120"`
}

// Account is a registered bot user.
type Account struct {
	ID            int64
	TelegramID    int64
	FullName      string
	Gmail         string
	PhoneNumber   string
	Age           int
	IsActive      bool
	RegisteredAt  time.Time
	LastLoginAt   time.Time
	Presentations int
	TotalSlides   int
}

// TopicRecord is one entry of a user's recent deck history.
type TopicRecord struct {
	Topic      string
	SlideCount int
}

// Statistics is the per-user usage summary shown on request.
type Statistics struct {
	Presentations int
	TotalSlides   int
	RegisteredAt  time.Time
	LastLoginAt   time.Time
	RecentTopics  []TopicRecord
}

const (
	ActivityRegistration = "registration"
	ActivityCreateDeck   = "create_presentation"
)

// SlideCountAllowed reports whether n is one of the offered deck sizes.
func SlideCountAllowed(n int) bool {
	for _, allowed := range AllowedSlideCounts {
		if n == allowed {
			return true
		}
	}
	return false
}
