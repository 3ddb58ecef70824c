package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both local backends must honor the same contract, so they share one
// test body.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFile(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemory(),
		"file":   fileStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, KeyUsers)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, s.Set(ctx, KeyUsers, []byte(`[{"id":"1"}]`)))
			got, err := s.Get(ctx, KeyUsers)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, string(got))

			// whole value replaced on every write
			require.NoError(t, s.Set(ctx, KeyUsers, []byte(`[]`)))
			got, err = s.Get(ctx, KeyUsers)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			require.NoError(t, s.Delete(ctx, KeyUsers))
			_, err = s.Get(ctx, KeyUsers)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			// deleting an absent key is not an error
			assert.NoError(t, s.Delete(ctx, "nope"))
			assert.NoError(t, s.Close())
		})
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, KeyBooks, []byte("books")))
			require.NoError(t, s.Set(ctx, KeyCurrentUser, []byte("user")))

			require.NoError(t, s.Delete(ctx, KeyCurrentUser))
			got, err := s.Get(ctx, KeyBooks)
			require.NoError(t, err)
			assert.Equal(t, "books", string(got))
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte("original")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(out))

	out[0] = 'Y'
	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyBooks, []byte(`["kept"]`)))
	require.NoError(t, first.Close())

	second, err := NewFile(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, KeyBooks)
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(got))
}
