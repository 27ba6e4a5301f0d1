package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/baseline"
	"github.com/yourusername/prop-edge/internal/catalog"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/orchestrator"
	"github.com/yourusername/prop-edge/internal/repository"
)

// baselineRefreshJob rebuilds the cached baselines for every entity with rows
// in the configured season. Implements scheduler.BaselineRefresher.
type baselineRefreshJob struct {
	repo      *repository.PostgresPerformanceRepository
	baselines *baseline.Service
	season    string
	logger    *logrus.Logger
}

func (j *baselineRefreshJob) RefreshBaselines(ctx context.Context) error {
	entities, err := j.repo.ListTrackedEntities(ctx, j.season)
	if err != nil {
		return err
	}

	refreshed := 0
	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := j.repo.LoadRows(ctx, entity.EntityID, entity.EntityType, entity.Sport, []string{j.season})
		if err != nil {
			j.logger.WithError(err).WithField("entity_id", entity.EntityID).Warn("Skipping baseline refresh for entity")
			continue
		}
		j.baselines.Invalidate(entity.EntityID, j.season)
		j.baselines.GetOrCompute(rows, entity.EntityID, entity.EntityType, entity.Sport, j.season)
		refreshed++
	}

	j.logger.WithFields(logrus.Fields{
		"season":    j.season,
		"entities":  len(entities),
		"refreshed": refreshed,
	}).Info("Baseline refresh finished")
	return nil
}

// slateJob fetches the day's games per sport, analyzes the offered props, and
// logs the report summary. Implements scheduler.SlateRunner.
type slateJob struct {
	games  datasource.GamesSource
	orch   *orchestrator.Orchestrator
	sports []string
	logger *logrus.Logger
}

func (j *slateJob) RunSlate(ctx context.Context, date time.Time) error {
	for _, sport := range j.sports {
		if err := ctx.Err(); err != nil {
			return err
		}
		bets, contexts, locations := j.collect(ctx, sport, date)
		if len(bets) == 0 {
			continue
		}
		report := j.orch.AnalyzeSlate(ctx, bets, contexts, locations)
		j.logger.WithFields(logrus.Fields{
			"sport":     sport,
			"date":      date.Format("2006-01-02"),
			"analyses":  len(report.Analyses),
			"top_plays": len(report.TopPlays),
			"parlays":   len(report.Parlays),
		}).Info("Slate analyzed")
	}
	return nil
}

func (j *slateJob) collect(ctx context.Context, sport string, date time.Time) ([]models.PropBet, map[string]models.GameContext, map[string]string) {
	games, err := j.games.FetchGames(ctx, sport, date)
	if err != nil {
		j.logger.WithError(err).WithField("sport", sport).Warn("Failed to fetch games for slate")
		return nil, nil, nil
	}

	var bets []models.PropBet
	contexts := make(map[string]models.GameContext, len(games))
	locations := make(map[string]string, len(games))

	for _, game := range games {
		gameTime := game.StartTime
		venue := game.Venue
		contexts[game.GameID] = models.GameContext{
			GameID:   game.GameID,
			Venue:    &venue,
			GameTime: &gameTime,
		}
		if !game.Indoor {
			locations[game.GameID] = game.Location
		}

		props, err := j.games.FetchProps(ctx, game.GameID)
		if err != nil {
			j.logger.WithError(err).WithField("game_id", game.GameID).Warn("Failed to fetch props, skipping game")
			continue
		}
		for _, prop := range props {
			if prop.GameID == "" {
				prop.GameID = game.GameID
			}
			bets = append(bets, prop)
		}
	}
	return bets, contexts, locations
}

func newSlateJob(games datasource.GamesSource, orch *orchestrator.Orchestrator, cat *catalog.Catalog, logger *logrus.Logger) *slateJob {
	return &slateJob{
		games:  games,
		orch:   orch,
		sports: cat.Sports(),
		logger: logger,
	}
}
