package cachedRepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/internal/domain"
)

type fakeOrigin struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeOrigin) FindImage(ctx context.Context, phrase string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	stores  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) GetImage(ctx context.Context, phrase string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.entries[phrase]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return data, nil
}

func (f *fakeCache) SetImage(ctx context.Context, phrase string, data []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.stores++
	f.entries[phrase] = data
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFindImage_HitSkipsOrigin(t *testing.T) {
	origin := &fakeOrigin{data: []byte("fresh")}
	cache := newFakeCache()
	cache.entries["sunset"] = []byte("cached")

	repo := NewCachedRepo(origin, cache, discardLogger())

	data, err := repo.FindImage(context.Background(), "sunset")
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), data)
	assert.Zero(t, origin.calls)
}

func TestFindImage_MissFetchesAndStores(t *testing.T) {
	origin := &fakeOrigin{data: []byte("fresh")}
	cache := newFakeCache()

	repo := NewCachedRepo(origin, cache, discardLogger())

	data, err := repo.FindImage(context.Background(), "sunset")
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), data)
	assert.Equal(t, 1, origin.calls)
	assert.Equal(t, []byte("fresh"), cache.entries["sunset"])
}

func TestFindImage_CacheErrorsBypassed(t *testing.T) {
	origin := &fakeOrigin{data: []byte("fresh")}
	cache := newFakeCache()
	cache.getErr = errors.New("connection reset")
	cache.setErr = errors.New("connection reset")

	repo := NewCachedRepo(origin, cache, discardLogger())

	data, err := repo.FindImage(context.Background(), "sunset")
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), data)
	assert.Equal(t, 1, origin.calls)
}

func TestFindImage_OriginErrorPropagates(t *testing.T) {
	origin := &fakeOrigin{err: domain.ErrRecordNotFound}
	cache := newFakeCache()

	repo := NewCachedRepo(origin, cache, discardLogger())

	_, err := repo.FindImage(context.Background(), "nothing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Zero(t, cache.stores)
}
