package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-edge/internal/models"
)

func TestNewCatalog(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Sports())
}

func TestLookup(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	def, err := c.Lookup("NFL", "passing_yards")
	require.NoError(t, err)
	assert.Equal(t, "yards", def.Unit)
	assert.True(t, def.WeatherSensitive)
	assert.True(t, def.HigherIsBetter)

	// Sport codes are case-insensitive
	_, err = c.Lookup("nfl", "passing_yards")
	assert.NoError(t, err)
}

func TestLookupMisses(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Lookup("CRICKET", "runs")
	assert.ErrorIs(t, err, models.ErrUnsupportedSport)

	_, err = c.Lookup("NBA", "passing_yards")
	assert.ErrorIs(t, err, models.ErrUnsupportedStat)
}

func TestLowerIsBetterSign(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	def, err := c.Lookup("NBA", "turnovers")
	require.NoError(t, err)
	assert.False(t, def.HigherIsBetter)
	assert.Equal(t, -1.0, def.DirectionSign())
}

func TestDuplicateRegistrationFailsFast(t *testing.T) {
	groups := map[string][]StatGroup{
		"NBA": {
			{Name: "a", Stats: []models.StatDefinition{{Name: "points", Category: "scoring", Unit: "count"}}},
			{Name: "b", Stats: []models.StatDefinition{{Name: "points", Category: "scoring", Unit: "count"}}},
		},
	}
	_, err := NewFromGroups(groups)
	assert.ErrorIs(t, err, models.ErrCatalogInvalid)
}

func TestStatNamesOrdered(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	names := c.StatNames("NFL")
	require.NotEmpty(t, names)
	// Group order is registration order: passing before rushing.
	assert.Equal(t, "passing_yards", names[0])
}

func TestIsOutdoorSport(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.True(t, c.IsOutdoorSport("NFL"))
	assert.True(t, c.IsOutdoorSport("MLB"))
	assert.False(t, c.IsOutdoorSport("NBA"))
	assert.False(t, c.IsOutdoorSport("NHL"))
}
