// Package repository provides the PostgreSQL persistence layer: historical
// performance rows in, produced predictions out.
package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/models"
)

const errScanPerformanceRow = "failed to scan performance row: %w"

// PostgresPerformanceRepository loads historical per-game rows. It implements
// datasource.HistoricalSource.
type PostgresPerformanceRepository struct {
	db *database.DB
}

// NewPostgresPerformanceRepository creates a new performance repository
func NewPostgresPerformanceRepository(db *database.DB) *PostgresPerformanceRepository {
	return &PostgresPerformanceRepository{db: db}
}

// LoadRows retrieves the historical series for an entity, oldest first.
// Stats are stored as a JSONB column keyed by stat name.
func (r *PostgresPerformanceRepository) LoadRows(ctx context.Context, entityID, entityType, sport string, seasons []string) ([]models.PerformanceRow, error) {
	query := `
		SELECT entity_id, entity_type, sport, season, game_date, opponent,
			is_home, rest_days, game_hour, stats
		FROM performance_rows
		WHERE entity_id = $1 AND entity_type = $2 AND sport = $3
			AND (cardinality($4::text[]) = 0 OR season = ANY($4))
		ORDER BY game_date ASC
	`
	if seasons == nil {
		seasons = []string{}
	}

	rows, err := r.db.GetPool().Query(ctx, query, entityID, entityType, sport, seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance rows: %w", err)
	}
	defer rows.Close()

	var result []models.PerformanceRow
	for rows.Next() {
		row := models.PerformanceRow{}
		if err := rows.Scan(
			&row.EntityID, &row.EntityType, &row.Sport, &row.Season, &row.GameDate,
			&row.Opponent, &row.IsHome, &row.RestDays, &row.GameHour, &row.Stats,
		); err != nil {
			return nil, fmt.Errorf(errScanPerformanceRow, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// SaveRow upserts one historical game row
func (r *PostgresPerformanceRepository) SaveRow(ctx context.Context, row models.PerformanceRow) error {
	query := `
		INSERT INTO performance_rows (
			entity_id, entity_type, sport, season, game_date, opponent,
			is_home, rest_days, game_hour, stats
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (entity_id, game_date) DO UPDATE SET
			opponent = EXCLUDED.opponent,
			is_home = EXCLUDED.is_home,
			rest_days = EXCLUDED.rest_days,
			game_hour = EXCLUDED.game_hour,
			stats = EXCLUDED.stats
	`
	if err := r.db.Exec(ctx, query,
		row.EntityID, row.EntityType, row.Sport, row.Season, row.GameDate,
		row.Opponent, row.IsHome, row.RestDays, row.GameHour, row.Stats,
	); err != nil {
		return fmt.Errorf("failed to save performance row: %w", err)
	}
	return nil
}

// TrackedEntity is one entity the baseline refresh job rebuilds.
type TrackedEntity struct {
	EntityID   string
	EntityType string
	Sport      string
}

// ListTrackedEntities returns the distinct entities with rows in a season
func (r *PostgresPerformanceRepository) ListTrackedEntities(ctx context.Context, season string) ([]TrackedEntity, error) {
	query := `
		SELECT DISTINCT entity_id, entity_type, sport
		FROM performance_rows
		WHERE season = $1
		ORDER BY entity_id
	`
	rows, err := r.db.GetPool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked entities: %w", err)
	}
	defer rows.Close()

	var entities []TrackedEntity
	for rows.Next() {
		var e TrackedEntity
		if err := rows.Scan(&e.EntityID, &e.EntityType, &e.Sport); err != nil {
			return nil, fmt.Errorf("failed to scan tracked entity: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}
