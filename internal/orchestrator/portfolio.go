package orchestrator

import (
	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// PortfolioMetrics summarizes the risk profile of an analyzed slate treated
// as a one-unit-per-bet portfolio.
type PortfolioMetrics struct {
	BetCount         int     `json:"bet_count"`
	PositiveEdgeRate float64 `json:"positive_edge_rate"`
	AverageEdge      float64 `json:"average_edge"`
	AverageEV        float64 `json:"average_ev"`
	Variance         float64 `json:"variance"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
}

// computePortfolio derives slate-level metrics from the per-bet expected
// values: variance of EV across bets, a Sharpe-like mean/spread ratio, and
// the share of bets with a positive edge.
func computePortfolio(analyses []models.PropBetAnalysis) PortfolioMetrics {
	m := PortfolioMetrics{BetCount: len(analyses)}
	if len(analyses) == 0 {
		return m
	}

	evs := make([]float64, 0, len(analyses))
	positive := 0
	edgeSum := 0.0
	for _, a := range analyses {
		evs = append(evs, a.ExpectedValue)
		edgeSum += a.Edge
		if a.Edge > 0 {
			positive++
		}
	}

	m.PositiveEdgeRate = float64(positive) / float64(len(analyses))
	m.AverageEdge = edgeSum / float64(len(analyses))
	m.AverageEV = mathutil.Mean(evs)
	std := mathutil.Std(evs)
	m.Variance = std * std
	if std > 0 {
		m.SharpeRatio = m.AverageEV / std
	}
	return m
}
