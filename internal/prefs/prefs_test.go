package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SatoshiSim/internal/storage"
)

func TestSelectedYear_DefaultWhenUnset(t *testing.T) {
	p := New(storage.NewMemStore())
	assert.Equal(t, 2014, p.SelectedYear(2014))
}

func TestSelectedYear_RoundTrip(t *testing.T) {
	store := storage.NewMemStore()
	p := New(store)

	p.SetSelectedYear(2013)
	assert.Equal(t, 2013, p.SelectedYear(2014))

	// Stored as a string-encoded integer.
	raw, err := store.Read(YearKey)
	require.NoError(t, err)
	assert.Equal(t, "2013", string(raw))

	p.ClearSelectedYear()
	assert.Equal(t, 2014, p.SelectedYear(2014))
}

func TestSelectedYear_UnparseableFallsBack(t *testing.T) {
	store := storage.NewMemStore()
	require.NoError(t, store.Write(YearKey, []byte("twenty-thirteen")))

	p := New(store)
	assert.Equal(t, 2014, p.SelectedYear(2014))
}
