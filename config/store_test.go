package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	assert.Equal(t, "fallback", store.GetValue("Filter_search", "search_text", "fallback"))
	assert.False(t, store.HasValue("Filter_search", "search_text"))

	store.SetValue("Filter_search", "search_text", "player1")
	assert.Equal(t, "player1", store.GetValue("Filter_search", "search_text", ""))
	assert.True(t, store.HasValue("Filter_search", "search_text"))

	store.SetValue("Filter_search", "search_text", "player2")
	assert.Equal(t, "player2", store.GetValue("Filter_search", "search_text", ""))

	store.RemoveValue("Filter_search", "search_text")
	assert.False(t, store.HasValue("Filter_search", "search_text"))
	assert.Equal(t, "fallback", store.GetValue("Filter_search", "search_text", "fallback"))
}

func TestMemoryStore_SectionsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	store.SetValue("Filter_a", "enabled", "True")
	store.SetValue("Filter_b", "enabled", "False")

	assert.Equal(t, "True", store.GetValue("Filter_a", "enabled", ""))
	assert.Equal(t, "False", store.GetValue("Filter_b", "enabled", ""))
	assert.Equal(t, 2, store.Sections())
}

func TestViperStore_RoundTrip(t *testing.T) {
	store := NewViperStore(viper.New())

	assert.Equal(t, "fallback", store.GetValue("Filter_date", "start_date", "fallback"))

	store.SetValue("Filter_date", "start_date", "2023-01-01")
	assert.True(t, store.HasValue("Filter_date", "start_date"))
	assert.Equal(t, "2023-01-01", store.GetValue("Filter_date", "start_date", ""))

	store.RemoveValue("Filter_date", "start_date")
	assert.False(t, store.HasValue("Filter_date", "start_date"))
	assert.Equal(t, "fallback", store.GetValue("Filter_date", "start_date", "fallback"))

	// Setting again after removal resurfaces the key
	store.SetValue("Filter_date", "start_date", "2024-06-01")
	assert.Equal(t, "2024-06-01", store.GetValue("Filter_date", "start_date", ""))
}

func TestBoolWireForm(t *testing.T) {
	assert.Equal(t, "True", FormatBool(true))
	assert.Equal(t, "False", FormatBool(false))

	assert.True(t, ParseBool("True"))
	assert.True(t, ParseBool("true"))
	assert.True(t, ParseBool(" TRUE "))
	assert.False(t, ParseBool("False"))
	assert.False(t, ParseBool(""))
	assert.False(t, ParseBool("yes"))
}
