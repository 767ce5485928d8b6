package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielsamuels/covid-19-graphs/internal/country"
)

func ukProfile(t *testing.T) country.Profile {
	t.Helper()
	profile, err := country.Defaults().Lookup("UK")
	require.NoError(t, err)
	return profile
}

func TestMatchRowNewSchema(t *testing.T) {
	profile := ukProfile(t)

	ok, err := matchRow(map[string]string{
		"Country_Region": "United Kingdom",
		"Province_State": "",
		"Confirmed":      "10",
	}, profile)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchRow(map[string]string{
		"Country_Region": "United Kingdom",
		"Province_State": "Bermuda",
	}, profile)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchRowOldSchema(t *testing.T) {
	profile := ukProfile(t)

	ok, err := matchRow(map[string]string{
		"Country/Region": "UK",
		"Province/State": "UK",
	}, profile)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchRow(map[string]string{
		"Country/Region": "Italy",
		"Province/State": "",
	}, profile)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchRowUnknownSchema(t *testing.T) {
	_, err := matchRow(map[string]string{
		"Nation": "UK",
		"Cases":  "5",
	}, ukProfile(t))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Cases", "Nation"}, schemaErr.Keys)
}
