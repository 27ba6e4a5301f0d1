package orchestrator

import (
	"context"
	"math"
	"time"

	"github.com/yourusername/prop-edge/internal/mathutil"
	"github.com/yourusername/prop-edge/internal/models"
)

// GameOutcome is the team-level projection for one game: projected scores,
// the derived spread and total, and the home win probability under a normal
// approximation of the score difference.
type GameOutcome struct {
	GameID             string    `json:"game_id"`
	Sport              string    `json:"sport"`
	HomeTeam           string    `json:"home_team"`
	AwayTeam           string    `json:"away_team"`
	HomeProjected      float64   `json:"home_projected"`
	AwayProjected      float64   `json:"away_projected"`
	ProjectedSpread    float64   `json:"projected_spread"`
	ProjectedTotal     float64   `json:"projected_total"`
	HomeWinProbability float64   `json:"home_win_probability"`
	Confidence         float64   `json:"confidence"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// teamScoreStat is the stat predicted per team to project a game outcome.
const teamScoreStat = "points"

// PredictGameOutcome projects both team scores through the full pipeline and
// derives spread, total, and win probability from the two distributions.
func (o *Orchestrator) PredictGameOutcome(ctx context.Context, game models.Game, homeCtx, awayCtx models.GameContext) GameOutcome {
	isHome := true
	isAway := false
	homeCtx.IsHome = &isHome
	awayCtx.IsHome = &isAway

	home := o.Predict(ctx, PredictInput{
		EntityID:   game.HomeTeam,
		EntityName: game.HomeTeam,
		EntityType: models.EntityTypeTeam,
		Sport:      game.Sport,
		StatName:   teamScoreStat,
		GameID:     game.GameID,
		Location:   game.Location,
		Context:    homeCtx,
	})
	away := o.Predict(ctx, PredictInput{
		EntityID:   game.AwayTeam,
		EntityName: game.AwayTeam,
		EntityType: models.EntityTypeTeam,
		Sport:      game.Sport,
		StatName:   teamScoreStat,
		GameID:     game.GameID,
		Location:   game.Location,
		Context:    awayCtx,
	})

	homeScore := home.Prediction.PredictedValue
	awayScore := away.Prediction.PredictedValue
	diffStd := math.Sqrt(home.Prediction.ExpectedVariance + away.Prediction.ExpectedVariance)

	winProbability := 0.5
	if diffStd > 0 {
		winProbability = mathutil.NormCDF((homeScore - awayScore) / diffStd)
	} else if homeScore != awayScore {
		winProbability = 0
		if homeScore > awayScore {
			winProbability = 1
		}
	}

	return GameOutcome{
		GameID:             game.GameID,
		Sport:              game.Sport,
		HomeTeam:           game.HomeTeam,
		AwayTeam:           game.AwayTeam,
		HomeProjected:      homeScore,
		AwayProjected:      awayScore,
		ProjectedSpread:    homeScore - awayScore,
		ProjectedTotal:     homeScore + awayScore,
		HomeWinProbability: winProbability,
		Confidence:         math.Min(home.Prediction.ConfidenceScore, away.Prediction.ConfidenceScore),
		GeneratedAt:        time.Now().UTC(),
	}
}
