package accounts

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()

	config := &configs.Config{
		DB: configs.DatabaseConfig{Path: filepath.Join(t.TempDir(), "accounts.db")},
	}
	repo, err := NewRepo(config, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testProfile() domain.Profile {
	return domain.Profile{
		FullName:    "Aziz Karimov",
		Gmail:       "aziz.karimov@gmail.com",
		PhoneNumber: "+998901234567",
		Age:         21,
	}
}

func TestCreateAndFind(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, 555, testProfile())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	found, err := repo.FindByTelegramID(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Aziz Karimov", found.FullName)
	assert.Equal(t, "aziz.karimov@gmail.com", found.Gmail)
	assert.Zero(t, found.Presentations)
}

func TestFindByTelegramID_Unknown(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.FindByTelegramID(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestCreate_DuplicateGmail(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, testProfile())
	require.NoError(t, err)

	_, err = repo.Create(ctx, 2, testProfile())
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestCreate_DuplicateTelegramID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, testProfile())
	require.NoError(t, err)

	other := testProfile()
	other.Gmail = "other@gmail.com"
	_, err = repo.Create(ctx, 1, other)
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestIncrementPresentations(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	account, err := repo.Create(ctx, 10, testProfile())
	require.NoError(t, err)

	require.NoError(t, repo.IncrementPresentations(ctx, account.ID, 5))
	require.NoError(t, repo.IncrementPresentations(ctx, account.ID, 8))

	stats, err := repo.Statistics(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Presentations)
	assert.Equal(t, 13, stats.TotalSlides)
}

func TestStatistics_RecentTopicsNewestFirst(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	account, err := repo.Create(ctx, 20, testProfile())
	require.NoError(t, err)

	topics := []string{"Kosmos", "Dengizlar", "Tarix", "Musiqa", "Sport", "Kimyo", "Fizika"}
	for _, topic := range topics {
		req := domain.DeckRequest{
			Topic:      topic,
			Language:   domain.LanguageUz,
			SlideCount: 5,
			ThemeID:    "gradient_blue",
		}
		require.NoError(t, repo.RecordPresentation(ctx, account.ID, req))
	}

	stats, err := repo.Statistics(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, stats.RecentTopics, 5)
	assert.Equal(t, "Fizika", stats.RecentTopics[0].Topic)
	assert.Equal(t, "Tarix", stats.RecentTopics[4].Topic)
}

func TestStatistics_UnknownAccount(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Statistics(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestRecordActivity_WithoutAccount(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	// Unregistered users still leave an audit trail with a NULL user.
	require.NoError(t, repo.RecordActivity(ctx, 0, domain.ActivityCreateDeck, "deck requested before registration"))
}
