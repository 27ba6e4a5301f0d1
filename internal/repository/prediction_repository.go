package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/models"
)

const errScanPrediction = "failed to scan prediction: %w"

// PostgresPredictionRepository persists produced predictions for later
// calibration analysis.
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) *PostgresPredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// SavePrediction inserts a produced prediction. The line grid is stored as
// JSONB alongside the scalar columns used for calibration queries.
func (r *PostgresPredictionRepository) SavePrediction(ctx context.Context, p models.StatisticalPrediction) error {
	lines, err := json.Marshal(p.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction lines: %w", err)
	}

	query := `
		INSERT INTO predictions (
			id, entity_id, entity_type, sport, game_id, stat_name,
			predicted_value, expected_variance, confidence_score,
			historical_average, recent_form, lines, predicted_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	if err := r.db.Exec(ctx, query,
		p.ID, p.EntityID, p.EntityType, p.Sport, p.GameID, p.StatName,
		p.PredictedValue, p.ExpectedVariance, p.ConfidenceScore,
		p.HistoricalAverage, p.RecentForm, lines, p.PredictedAt,
	); err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// GetByID retrieves one prediction
func (r *PostgresPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (models.StatisticalPrediction, error) {
	query := `
		SELECT id, entity_id, entity_type, sport, game_id, stat_name,
			predicted_value, expected_variance, confidence_score,
			historical_average, recent_form, lines, predicted_at
		FROM predictions WHERE id = $1
	`
	var p models.StatisticalPrediction
	var lines []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EntityID, &p.EntityType, &p.Sport, &p.GameID, &p.StatName,
		&p.PredictedValue, &p.ExpectedVariance, &p.ConfidenceScore,
		&p.HistoricalAverage, &p.RecentForm, &lines, &p.PredictedAt,
	)
	if err != nil {
		return models.StatisticalPrediction{}, fmt.Errorf(errScanPrediction, err)
	}
	if err := json.Unmarshal(lines, &p.Lines); err != nil {
		return models.StatisticalPrediction{}, fmt.Errorf("failed to unmarshal prediction lines: %w", err)
	}
	return p, nil
}

// GetRecentForEntity retrieves the latest predictions for an entity and stat
func (r *PostgresPredictionRepository) GetRecentForEntity(ctx context.Context, entityID, statName string, limit int) ([]models.StatisticalPrediction, error) {
	query := `
		SELECT id, entity_id, entity_type, sport, game_id, stat_name,
			predicted_value, expected_variance, confidence_score,
			historical_average, recent_form, lines, predicted_at
		FROM predictions
		WHERE entity_id = $1 AND stat_name = $2
		ORDER BY predicted_at DESC
		LIMIT $3
	`
	rows, err := r.db.GetPool().Query(ctx, query, entityID, statName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var result []models.StatisticalPrediction
	for rows.Next() {
		var p models.StatisticalPrediction
		var lines []byte
		if err := rows.Scan(
			&p.ID, &p.EntityID, &p.EntityType, &p.Sport, &p.GameID, &p.StatName,
			&p.PredictedValue, &p.ExpectedVariance, &p.ConfidenceScore,
			&p.HistoricalAverage, &p.RecentForm, &lines, &p.PredictedAt,
		); err != nil {
			return nil, fmt.Errorf(errScanPrediction, err)
		}
		if err := json.Unmarshal(lines, &p.Lines); err != nil {
			return nil, fmt.Errorf("failed to unmarshal prediction lines: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
