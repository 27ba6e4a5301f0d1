package engine

import (
	"fmt"
	"strings"

	"github.com/yourusername/prop-edge/internal/mathutil"
)

// Model is one predictor in an ensemble. Implementations must be pure
// functions of the feature vector; a returned error excludes the model from
// that evaluation without failing the prediction.
type Model interface {
	Name() string
	Predict(f FeatureVector) (float64, error)
}

// Fixed ensemble weights, applied in registration order. Extra models beyond
// the weight table share the last weight.
var ensembleWeights = []float64{0.3, 0.3, 0.25, 0.15}

// Registry maps (sport, stat) to its model set. Owned by the engine instance;
// there is no package-level registry.
type Registry struct {
	models map[string][]Model
}

// NewRegistry returns an empty model registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string][]Model)}
}

func registryKey(sport, stat string) string {
	return strings.ToUpper(sport) + "|" + strings.ToLower(stat)
}

// Register appends models for a (sport, stat) pair.
func (r *Registry) Register(sport, stat string, models ...Model) {
	key := registryKey(sport, stat)
	r.models[key] = append(r.models[key], models...)
}

// Lookup returns the registered model set, or nil when none exists.
func (r *Registry) Lookup(sport, stat string) []Model {
	return r.models[registryKey(sport, stat)]
}

// Size returns the number of registered (sport, stat) entries.
func (r *Registry) Size() int {
	return len(r.models)
}

// DefaultModels returns the deterministic statistical model set registered for
// every supported (sport, stat) pair when no trained artifacts exist.
func DefaultModels() []Model {
	return []Model{
		recentFormModel{},
		matchupModel{},
		trendModel{},
		usageModel{},
	}
}

// recentFormModel leans on short-window averages with small home and rest
// modifiers.
type recentFormModel struct{}

func (recentFormModel) Name() string { return "recent_form" }

func (recentFormModel) Predict(f FeatureVector) (float64, error) {
	if f.Last5Average == 0 && f.SeasonAverage == 0 {
		return 0, fmt.Errorf("recent_form: no historical signal")
	}
	estimate := 0.6*f.Last5Average + 0.4*f.Last10Average
	if estimate == 0 {
		estimate = f.SeasonAverage
	}
	estimate *= 1 + (f.HomeFlag-0.5)*0.04
	estimate *= 1 + (f.RestDays-neutralRestDays)*0.005
	return estimate, nil
}

// matchupModel blends the season average with the matchup history and the
// opponent's defensive rank.
type matchupModel struct{}

func (matchupModel) Name() string { return "matchup_adjusted" }

func (matchupModel) Predict(f FeatureVector) (float64, error) {
	if f.SeasonAverage == 0 && f.MatchupAverage == 0 {
		return 0, fmt.Errorf("matchup_adjusted: no historical signal")
	}
	estimate := 0.65*f.SeasonAverage + 0.35*f.MatchupAverage
	// Rank 1 is the toughest defense; 30 the softest. Centered on 15.
	rankFactor := (f.OpponentRank - neutralOpponentRank) / neutralOpponentRank
	estimate *= 1 + mathutil.Clamp(rankFactor, -1, 1)*0.08
	return estimate, nil
}

// trendModel projects the short-window trajectory onto the long-window base.
type trendModel struct{}

func (trendModel) Name() string { return "trend_projection" }

func (trendModel) Predict(f FeatureVector) (float64, error) {
	if f.Last20Average == 0 {
		return 0, fmt.Errorf("trend_projection: no long-window signal")
	}
	momentum := f.Last5Average - f.Last20Average
	return f.Last20Average + 0.5*momentum, nil
}

// usageModel scales the season average by projected usage relative to the
// neutral share, tempered by health.
type usageModel struct{}

func (usageModel) Name() string { return "usage_scaled" }

func (usageModel) Predict(f FeatureVector) (float64, error) {
	if f.SeasonAverage == 0 {
		return 0, fmt.Errorf("usage_scaled: no season signal")
	}
	usageRatio := f.ProjectedUsage / neutralUsage
	estimate := f.SeasonAverage * mathutil.Clamp(usageRatio, 0.5, 1.5)
	estimate *= mathutil.Clamp(f.HealthStatus, 0.5, 1.0)
	return estimate, nil
}

// Opponent-rank buckets for the fallback estimate.
const (
	toughOpponentRank = 10
	softOpponentRank  = 21
	rankBucketSwing   = 0.10
	homeSwing         = 0.03
)

// fallbackEstimate is the deterministic weighted average used when no model
// set exists for a (sport, stat): 0.5*last5 + 0.3*last10 + 0.2*season, with
// opponent-rank bucket and home/away modifiers.
func fallbackEstimate(f FeatureVector) float64 {
	estimate := 0.5*f.Last5Average + 0.3*f.Last10Average + 0.2*f.SeasonAverage
	switch {
	case f.OpponentRank <= toughOpponentRank:
		estimate *= 1 - rankBucketSwing
	case f.OpponentRank >= softOpponentRank:
		estimate *= 1 + rankBucketSwing
	}
	switch f.HomeFlag {
	case 1:
		estimate *= 1 + homeSwing
	case 0:
		estimate *= 1 - homeSwing
	}
	return estimate
}
