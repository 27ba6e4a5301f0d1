package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPrediction logs a produced stat prediction.
func (al *AuditLogger) LogPrediction(predictionID, entityID, sport, statName, gameID string, value, confidence float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"prediction_id": predictionID,
		"entity_id":     entityID,
		"sport":         sport,
		"stat_name":     statName,
		"game_id":       gameID,
		"value":         value,
		"confidence":    confidence,
		"timestamp":     timestamp.Unix(),
	}).Info("Prediction recorded")
}

// LogPropRecommendation logs an evaluated prop bet recommendation.
func (al *AuditLogger) LogPropRecommendation(player, sport, statName string, line float64, side, recommendation string, edge, expectedValue float64) {
	al.WithFields(logrus.Fields{
		"player":         player,
		"sport":          sport,
		"stat_name":      statName,
		"line":           line,
		"side":           side,
		"recommendation": recommendation,
		"edge":           edge,
		"expected_value": expectedValue,
	}).Info("Prop recommendation recorded")
}

// LogParlay logs a constructed parlay.
func (al *AuditLogger) LogParlay(legCount int, totalProbability, totalOdds, expectedValue float64, recommendation, riskLevel string) {
	al.WithFields(logrus.Fields{
		"leg_count":         legCount,
		"total_probability": totalProbability,
		"total_odds":        totalOdds,
		"expected_value":    expectedValue,
		"recommendation":    recommendation,
		"risk_level":        riskLevel,
	}).Info("Parlay recorded")
}

// LogStakeSuggestion logs a Kelly stake suggestion.
func (al *AuditLogger) LogStakeSuggestion(label string, fraction float64, stake string, bankroll float64) {
	al.WithFields(logrus.Fields{
		"label":    label,
		"fraction": fraction,
		"stake":    stake,
		"bankroll": bankroll,
	}).Info("Stake suggestion recorded")
}

// LogExternalFallback logs an external fetch that degraded to fallback data.
func (al *AuditLogger) LogExternalFallback(source, target, reason string) {
	al.WithFields(logrus.Fields{
		"source": source,
		"target": target,
		"reason": reason,
	}).Warn("External fetch fell back")
}
