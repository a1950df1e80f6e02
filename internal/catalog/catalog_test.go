package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SatoshiSim/internal/model"
)

func TestNew_DefaultsWhenEmpty(t *testing.T) {
	c := New(nil)
	require.Equal(t, 5, c.Len())

	first, err := c.ItemAt(0)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15 Pro Max", first.Name)
	assert.Equal(t, 1199.0, first.Price)
}

func TestNew_CopiesInput(t *testing.T) {
	items := []model.ComparisonItem{{Name: "thing", Price: 10, Unit: "个"}}
	c := New(items)

	items[0].Price = 999
	got, err := c.ItemAt(0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Price, "catalog must not alias caller slice")
}

func TestItemAt_OutOfRange(t *testing.T) {
	c := New(nil)
	_, err := c.ItemAt(-1)
	assert.Error(t, err)
	_, err = c.ItemAt(c.Len())
	assert.Error(t, err)
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := New(nil)
	items := c.Items()
	items[0].Price = 1

	got, err := c.ItemAt(0)
	require.NoError(t, err)
	assert.Equal(t, 1199.0, got.Price)
}
