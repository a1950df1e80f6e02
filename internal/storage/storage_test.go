package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read("cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write("cart", []byte(`{"0":3}`)))
	got, err := s.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"0":3}`), got)

	require.NoError(t, s.Delete("cart"))
	_, err = s.Read("cart")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is a no-op.
	assert.NoError(t, s.Delete("cart"))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Write("selected-year", []byte("2013")))

	s2, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := s2.Read("selected-year")
	require.NoError(t, err)
	assert.Equal(t, "2013", string(got))
}

func TestMemStore_RoundTrip(t *testing.T) {
	s := NewMemStore()

	_, err := s.Read("cart")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write("cart", []byte("abc")))
	got, err := s.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	// Reads return copies; mutating the result must not change the store.
	got[0] = 'x'
	again, err := s.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))

	require.NoError(t, s.Delete("cart"))
	_, err = s.Read("cart")
	assert.ErrorIs(t, err, ErrNotFound)
}
