// Package catalog provides the static registry of statistical categories per
// sport. Stat groups are registered in explicit ordered lists so enumeration
// order is deterministic.
package catalog

import (
	"fmt"
	"strings"

	"github.com/yourusername/prop-edge/internal/models"
)

// StatGroup is a named, ordered bundle of stat definitions for one sport.
type StatGroup struct {
	Name  string
	Stats []models.StatDefinition
}

// Catalog maps (sport, stat) to immutable stat metadata. Built once at
// startup and read-only afterwards.
type Catalog struct {
	sports map[string][]StatGroup
	index  map[string]map[string]models.StatDefinition
}

// New builds a catalog from the default registration lists and validates it.
// Malformed registrations fail here, at initialization, not at prediction
// time.
func New() (*Catalog, error) {
	return NewFromGroups(defaultRegistrations())
}

// NewFromGroups builds a catalog from explicit registration lists.
func NewFromGroups(sports map[string][]StatGroup) (*Catalog, error) {
	c := &Catalog{
		sports: sports,
		index:  make(map[string]map[string]models.StatDefinition),
	}
	for sport, groups := range sports {
		byName := make(map[string]models.StatDefinition)
		for _, group := range groups {
			if group.Name == "" {
				return nil, fmt.Errorf("%w: sport %s has an unnamed stat group", models.ErrCatalogInvalid, sport)
			}
			for _, def := range group.Stats {
				if def.Name == "" || def.Unit == "" {
					return nil, fmt.Errorf("%w: sport %s group %s has a stat with empty name or unit", models.ErrCatalogInvalid, sport, group.Name)
				}
				if _, dup := byName[def.Name]; dup {
					return nil, fmt.Errorf("%w: sport %s registers stat %s twice", models.ErrCatalogInvalid, sport, def.Name)
				}
				byName[def.Name] = def
			}
		}
		c.index[sport] = byName
	}
	return c, nil
}

// Lookup returns the definition for (sport, stat). Misses resolve to
// models.ErrUnsupportedSport or models.ErrUnsupportedStat so callers can
// degrade to neutral behaviour instead of failing.
func (c *Catalog) Lookup(sport, stat string) (models.StatDefinition, error) {
	byName, ok := c.index[normalizeSport(sport)]
	if !ok {
		return models.StatDefinition{}, fmt.Errorf("%w: %s", models.ErrUnsupportedSport, sport)
	}
	def, ok := byName[stat]
	if !ok {
		return models.StatDefinition{}, fmt.Errorf("%w: %s/%s", models.ErrUnsupportedStat, sport, stat)
	}
	return def, nil
}

// Sports returns the registered sport codes.
func (c *Catalog) Sports() []string {
	sports := make([]string, 0, len(c.index))
	for sport := range c.index {
		sports = append(sports, sport)
	}
	return sports
}

// Groups returns the ordered stat groups for a sport.
func (c *Catalog) Groups(sport string) ([]StatGroup, error) {
	groups, ok := c.sports[normalizeSport(sport)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedSport, sport)
	}
	return groups, nil
}

// StatNames returns every registered stat name for a sport in group order.
func (c *Catalog) StatNames(sport string) []string {
	groups, err := c.Groups(sport)
	if err != nil {
		return nil
	}
	var names []string
	for _, group := range groups {
		for _, def := range group.Stats {
			names = append(names, def.Name)
		}
	}
	return names
}

// IsOutdoorSport reports whether a sport plays exposed to weather. Indoor
// sports always receive a zero weather impact.
func (c *Catalog) IsOutdoorSport(sport string) bool {
	switch normalizeSport(sport) {
	case "NFL", "MLB":
		return true
	default:
		return false
	}
}

func normalizeSport(sport string) string {
	return strings.ToUpper(strings.TrimSpace(sport))
}
