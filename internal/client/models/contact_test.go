package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_String(t *testing.T) {
	c := Contact{Name: "Alice", Phone: "555-1234", Email: "alice@example.com"}
	assert.Equal(t, "Alice | 555-1234 | alice@example.com", c.String())

	c.Country = "LV"
	assert.Equal(t, "Alice | 555-1234 | alice@example.com | LV", c.String())
}

func TestContactPage_DecodesListAndSearch(t *testing.T) {
	var list ContactPage
	require.NoError(t, json.Unmarshal([]byte(`{"contacts":[{"id":"c1","name":"Al","phone":"1"}],"pagination":{"currentPage":1,"totalPages":1,"totalCount":1,"limit":10}}`), &list))
	assert.Nil(t, list.SearchParams)
	assert.Len(t, list.Contacts, 1)
	assert.Equal(t, 1, list.Pagination.TotalCount)

	var search ContactPage
	require.NoError(t, json.Unmarshal([]byte(`{"contacts":[],"searchParams":{"name":"ali"},"pagination":{"currentPage":1,"totalPages":0,"totalCount":0,"limit":10}}`), &search))
	require.NotNil(t, search.SearchParams)
	assert.Equal(t, "ali", search.SearchParams.Name)
}
