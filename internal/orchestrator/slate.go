package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/weather"
)

// AnalyzePropBet runs the pipeline for an offered prop and evaluates the bet
// against the final adjusted prediction.
func (o *Orchestrator) AnalyzePropBet(ctx context.Context, bet models.PropBet, gc models.GameContext, location string) models.PropBetAnalysis {
	line := bet.Line
	out := o.Predict(ctx, PredictInput{
		EntityID:   bet.EntityID,
		EntityName: bet.Player,
		EntityType: bet.EntityType,
		Sport:      bet.Sport,
		StatName:   bet.StatName,
		GameID:     bet.GameID,
		Location:   location,
		MarketLine: &line,
		Context:    gc,
	})

	analysis := engine.AnalyzePropBet(bet, out.Prediction)
	analysis.SupportingFactors, analysis.RiskFactors = betNarrative(out, analysis)
	return analysis
}

// SlateReport aggregates an analyzed prop slate: every analysis ranked by
// expected value, the top positive-edge plays, constructed parlays, and
// portfolio-level risk metrics.
type SlateReport struct {
	Analyses    []models.PropBetAnalysis `json:"analyses"`
	TopPlays    []models.PropBetAnalysis `json:"top_plays"`
	Parlays     []models.ParlayAnalysis  `json:"parlays"`
	Portfolio   PortfolioMetrics         `json:"portfolio"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// AnalyzeSlate evaluates a full prop slate. Game contexts are keyed by game
// ID; a missing context analyzes the bet with neutral defaults.
func (o *Orchestrator) AnalyzeSlate(ctx context.Context, bets []models.PropBet, contexts map[string]models.GameContext, locations map[string]string) SlateReport {
	start := time.Now()
	report := SlateReport{GeneratedAt: start.UTC()}

	o.prefetchWeather(ctx, locations)

	for _, bet := range bets {
		analysis := o.AnalyzePropBet(ctx, bet, contexts[bet.GameID], locations[bet.GameID])
		report.Analyses = append(report.Analyses, analysis)
	}

	sort.SliceStable(report.Analyses, func(i, j int) bool {
		return report.Analyses[i].ExpectedValue > report.Analyses[j].ExpectedValue
	})

	positive := 0
	for _, a := range report.Analyses {
		if a.Edge <= 0 {
			continue
		}
		positive++
		if len(report.TopPlays) < o.cfg.TopPlays {
			report.TopPlays = append(report.TopPlays, a)
		}
	}
	metrics.SlatePositiveEdgeBets.Set(float64(positive))

	report.Parlays = o.buildParlays(report.Analyses)
	report.Portfolio = computePortfolio(report.Analyses)

	for _, play := range report.TopPlays {
		o.audit.LogPropRecommendation(play.Player, play.Sport, play.StatName,
			play.Line, play.Side, play.Recommendation, play.Edge, play.ExpectedValue)
	}
	for _, parlay := range report.Parlays {
		o.audit.LogParlay(len(parlay.Legs), parlay.TotalProbability,
			parlay.TotalOdds, parlay.ExpectedValue, parlay.Recommendation, parlay.RiskLevel)
	}

	metrics.SlateAnalysisDuration.Observe(time.Since(start).Seconds())
	o.logger.WithFields(logrus.Fields{
		"bets":          len(bets),
		"positive_edge": positive,
		"parlays":       len(report.Parlays),
	}).Info("Slate analyzed")
	return report
}

// prefetchWeather warms the weather cache for every distinct outdoor slate
// location with bounded parallelism, so the per-bet fetches inside Predict
// hit the cache instead of the upstream API one game at a time.
func (o *Orchestrator) prefetchWeather(ctx context.Context, locations map[string]string) {
	if o.weatherSrc == nil || len(locations) == 0 {
		return
	}
	seen := make(map[string]bool, len(locations))
	distinct := make([]string, 0, len(locations))
	for _, location := range locations {
		if location == "" || seen[location] {
			continue
		}
		seen[location] = true
		distinct = append(distinct, location)
	}
	if len(distinct) == 0 {
		return
	}
	weather.FetchMany(ctx, o.weatherSrc, distinct, o.cfg.MaxParallelFetch)
	o.logger.WithFields(logrus.Fields{
		"locations":    len(distinct),
		"max_parallel": o.cfg.MaxParallelFetch,
	}).Debug("Slate weather prefetched")
}

// Parlay construction bounds: combinations come from the strongest filtered
// bets only, keeping the candidate pool small enough to enumerate.
const parlayCandidatePool = 6

// buildParlays enumerates 2- and 3-leg combinations from the bets that clear
// the minimum edge and confidence, ranks them by expected value, and caps the
// result.
func (o *Orchestrator) buildParlays(analyses []models.PropBetAnalysis) []models.ParlayAnalysis {
	var candidates []models.PropBetAnalysis
	for _, a := range analyses {
		if a.Edge >= o.cfg.MinEdge && a.Confidence >= o.cfg.MinConfidence {
			candidates = append(candidates, a)
		}
		if len(candidates) == parlayCandidatePool {
			break
		}
	}
	if len(candidates) < 2 {
		return nil
	}

	maxLegs := o.cfg.MaxParlayLegs
	if maxLegs < 2 {
		maxLegs = 2
	}

	var parlays []models.ParlayAnalysis
	for size := 2; size <= maxLegs && size <= len(candidates); size++ {
		for _, combo := range combinations(len(candidates), size) {
			legs := make([]models.ParlayLeg, 0, size)
			for _, idx := range combo {
				legs = append(legs, parlayLeg(candidates[idx]))
			}
			parlays = append(parlays, engine.AnalyzeParlay(legs))
		}
	}

	sort.SliceStable(parlays, func(i, j int) bool {
		return parlays[i].ExpectedValue > parlays[j].ExpectedValue
	})
	if len(parlays) > o.cfg.MaxParlays {
		parlays = parlays[:o.cfg.MaxParlays]
	}
	return parlays
}

func parlayLeg(a models.PropBetAnalysis) models.ParlayLeg {
	probability := a.OverProbability
	if a.Side == models.SideUnder {
		probability = a.UnderProbability
	}
	return models.ParlayLeg{
		Label:       fmt.Sprintf("%s %s %s %.1f", a.Player, a.StatName, a.Side, a.Line),
		Probability: probability,
		DecimalOdds: a.DecimalOdds,
	}
}

// combinations enumerates all size-k index subsets of [0, n).
func combinations(n, k int) [][]int {
	var result [][]int
	combo := make([]int, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			picked := make([]int, k)
			copy(picked, combo)
			result = append(result, picked)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return result
}
