// Package baseline computes per-entity statistical baselines from historical
// performance series: descriptive stats, trends, consistency, situational
// splits, and comparisons of current values against the cached baseline.
package baseline

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// PopulationRanker estimates the percentile of a stat mean against a
// reference population. The default implementation is a neutral placeholder;
// a real population lookup slots in behind this interface.
type PopulationRanker interface {
	PercentileRank(sport, stat string, mean float64) float64
}

// neutralRanker answers 50 for everything. Placeholder until an external
// population source is wired in.
type neutralRanker struct{}

func (neutralRanker) PercentileRank(sport, stat string, mean float64) float64 {
	return 50.0
}

// NewNeutralRanker returns the placeholder population ranker.
func NewNeutralRanker() PopulationRanker {
	return neutralRanker{}
}

// Service builds and caches performance baselines.
type Service struct {
	ranker PopulationRanker
	cache  *Cache
	logger *logrus.Logger
}

// NewService creates a baseline service. A nil ranker defaults to the
// neutral placeholder.
func NewService(ranker PopulationRanker, cacheTTL time.Duration, logger *logrus.Logger) *Service {
	if ranker == nil {
		ranker = NewNeutralRanker()
	}
	return &Service{
		ranker: ranker,
		cache:  NewCache(cacheTTL),
		logger: logger,
	}
}

// minCloseGames is the smallest close-game sample worth a clutch metric.
const minCloseGames = 3

// CreateBaseline computes a PerformanceBaseline from a historical series.
// An empty series returns a valid baseline with GamesPlayed=0 and empty
// collections; callers must tolerate zero-valued baselines.
func (s *Service) CreateBaseline(rows []models.PerformanceRow, entityID, entityType, sport, season string) models.PerformanceBaseline {
	b := models.PerformanceBaseline{
		EntityID:          entityID,
		EntityType:        entityType,
		Sport:             sport,
		Season:            season,
		GamesPlayed:       len(rows),
		Statistics:        make(map[string]models.StatSummary),
		Percentiles:       make(map[string]float64),
		Trends:            make(map[string]models.PerformanceTrend),
		ConsistencyScores: make(map[string]float64),
		ClutchMetrics:     make(map[string]float64),
		SituationalSplits: make(map[string]map[string]float64),
		ComputedAt:        time.Now().UTC(),
	}
	if len(rows) == 0 {
		s.logger.WithFields(logrus.Fields{
			"entity_id": entityID,
			"season":    season,
		}).Debug("No historical rows, returning empty baseline")
		return b
	}

	for _, stat := range statColumns(rows) {
		values := columnValues(rows, stat)
		if len(values) == 0 {
			continue
		}
		min, max := mathutil.MinMax(values)
		b.Statistics[stat] = models.StatSummary{
			Mean:   mathutil.Mean(values),
			Median: mathutil.Median(values),
			Std:    mathutil.Std(values),
			Min:    min,
			Max:    max,
			Q1:     mathutil.Quantile(values, 0.25),
			Q3:     mathutil.Quantile(values, 0.75),
			Games:  len(values),
		}
		b.Percentiles[stat] = s.ranker.PercentileRank(sport, stat, b.Statistics[stat].Mean)
		b.ConsistencyScores[stat] = consistencyScore(values)
		b.Trends[stat] = ComputeTrend(entityID, stat, "season", values)
	}

	b.SituationalSplits = computeSplits(rows)
	b.ClutchMetrics = computeClutchMetrics(rows, b.Statistics)

	s.logger.WithFields(logrus.Fields{
		"entity_id": entityID,
		"season":    season,
		"games":     b.GamesPlayed,
		"stats":     len(b.Statistics),
	}).Debug("Baseline computed")

	return b
}

// GetOrCompute returns the cached baseline for (entityID, season) or computes
// and caches a fresh one from the supplied rows.
func (s *Service) GetOrCompute(rows []models.PerformanceRow, entityID, entityType, sport, season string) models.PerformanceBaseline {
	if cached, ok := s.cache.Get(entityID, season); ok {
		return cached
	}
	b := s.CreateBaseline(rows, entityID, entityType, sport, season)
	s.cache.Set(entityID, season, b)
	return b
}

// Invalidate removes the cached baseline for (entityID, season).
func (s *Service) Invalidate(entityID, season string) {
	s.cache.Delete(entityID, season)
}

// consistencyScore is 1/(1+cv): higher means steadier output. An entity with
// a zero mean is treated as perfectly consistent.
func consistencyScore(values []float64) float64 {
	mean := mathutil.Mean(values)
	if mean == 0 {
		return 1.0
	}
	std := mathutil.Std(values)
	cv := std / mean
	if cv < 0 {
		cv = -cv
	}
	return 1.0 / (1.0 + cv)
}

// statColumns collects stat names across rows in first-seen order.
func statColumns(rows []models.PerformanceRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		for name := range row.Stats {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// columnValues extracts non-missing values of one stat in row order.
func columnValues(rows []models.PerformanceRow, stat string) []float64 {
	var values []float64
	for _, row := range rows {
		if v, ok := row.StatValue(stat); ok {
			values = append(values, v)
		}
	}
	return values
}

// computeClutchMetrics averages each stat over close games relative to the
// overall mean. Requires a close_game flag column and at least minCloseGames
// flagged rows.
func computeClutchMetrics(rows []models.PerformanceRow, stats map[string]models.StatSummary) map[string]float64 {
	metrics := make(map[string]float64)
	var closeRows []models.PerformanceRow
	for _, row := range rows {
		if flag, ok := row.StatValue("close_game"); ok && flag == 1 {
			closeRows = append(closeRows, row)
		}
	}
	if len(closeRows) < minCloseGames {
		return metrics
	}
	for stat, summary := range stats {
		if stat == "close_game" || summary.Mean == 0 {
			continue
		}
		values := columnValues(closeRows, stat)
		if len(values) == 0 {
			continue
		}
		metrics[stat] = mathutil.Mean(values) / summary.Mean
	}
	return metrics
}
