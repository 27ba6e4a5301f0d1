package orchestrator

import (
	"fmt"
	"math"

	"github.com/yourusername/prop-edge/internal/models"
)

// Narrative thresholds. Purely presentational: nothing downstream reads the
// strings back.
const (
	lowConfidenceThreshold  = 0.5
	lowConsistencyThreshold = 0.5
	strongEdgeThreshold     = 0.08
	wideSpreadRatio         = 0.5
)

// narrative assembles the report-level insight and risk strings from the
// per-stage summaries of a comprehensive prediction.
func narrative(report models.ComprehensivePrediction) (insights, risks []string) {
	if w := report.WeatherSummary; w != nil {
		line := fmt.Sprintf("weather impact %s (%.1f%%)", w.Severity, w.ImpactPercentage)
		switch w.Severity {
		case models.SeveritySignificant, models.SeveritySevere:
			risks = append(risks, line)
		case models.SeverityModerate:
			insights = append(insights, line)
		}
	}
	if c := report.CrossRefSummary; c != nil {
		insights = append(insights, c.KeyInsights...)
		risks = append(risks, c.RiskFactors...)
	}
	for stat, pred := range report.Predictions {
		if pred.ConfidenceScore < lowConfidenceThreshold {
			risks = append(risks, fmt.Sprintf("low model confidence on %s (%.2f)", stat, pred.ConfidenceScore))
		}
	}
	if b := report.Baseline; b != nil {
		for stat := range report.Predictions {
			if trend, ok := b.Trends[stat]; ok && trend.Direction != models.TrendStable {
				insights = append(insights, fmt.Sprintf("%s trending %s over the season (strength %.2f)", stat, trend.Direction, trend.Strength))
			}
			if score, ok := b.ConsistencyScores[stat]; ok && score < lowConsistencyThreshold {
				risks = append(risks, fmt.Sprintf("inconsistent %s output (consistency %.2f)", stat, score))
			}
		}
	}
	return insights, risks
}

// betNarrative assembles the supporting and risk strings for one analyzed
// prop from its pipeline output.
func betNarrative(out PredictOutput, analysis models.PropBetAnalysis) (supporting, risks []string) {
	if analysis.Edge >= strongEdgeThreshold {
		supporting = append(supporting, fmt.Sprintf("edge %.1f%% on the %s", analysis.Edge*100, analysis.Side))
	}
	if c := out.CrossRef; c != nil {
		supporting = append(supporting, c.KeyInsights...)
		risks = append(risks, c.RiskFactors...)
	}
	if w := out.Weather; w != nil {
		switch w.Severity {
		case models.SeveritySignificant, models.SeveritySevere:
			risks = append(risks, fmt.Sprintf("weather impact %s (%.1f%%)", w.Severity, w.ImpactPercentage))
		}
	}
	if b := out.Baseline; b != nil {
		if trend, ok := b.Trends[analysis.StatName]; ok {
			switch {
			case trend.Direction == models.TrendUp && analysis.Side == models.SideOver,
				trend.Direction == models.TrendDown && analysis.Side == models.SideUnder:
				supporting = append(supporting, fmt.Sprintf("season trend %s backs the %s", trend.Direction, analysis.Side))
			case trend.Direction != models.TrendStable:
				risks = append(risks, fmt.Sprintf("season trend %s runs against the %s", trend.Direction, analysis.Side))
			}
		}
		if score, ok := b.ConsistencyScores[analysis.StatName]; ok && score < lowConsistencyThreshold {
			risks = append(risks, fmt.Sprintf("inconsistent %s output (consistency %.2f)", analysis.StatName, score))
		}
	}
	if analysis.Confidence < lowConfidenceThreshold {
		risks = append(risks, fmt.Sprintf("low model confidence (%.2f)", analysis.Confidence))
	}
	pred := out.Prediction
	if pred.PredictedValue != 0 && pred.Std()/math.Abs(pred.PredictedValue) > wideSpreadRatio {
		risks = append(risks, "wide outcome distribution relative to the projection")
	}
	return supporting, risks
}
