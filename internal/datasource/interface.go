// Package datasource provides the external data collaborators: the
// historical performance loader, the games/odds provider, and the shared
// rate-limited HTTP client they ride on.
package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/prop-edge/internal/models"
)

// HistoricalSource loads per-game performance rows for an entity. The
// repository package provides the Postgres implementation.
type HistoricalSource interface {
	// LoadRows retrieves the historical series for an entity, newest last.
	// Seasons may be empty to mean "all available".
	LoadRows(ctx context.Context, entityID, entityType, sport string, seasons []string) ([]models.PerformanceRow, error)
}

// GamesSource supplies today's games with their betting markets.
type GamesSource interface {
	// FetchGames retrieves games for a sport on a given date.
	FetchGames(ctx context.Context, sport string, date time.Time) ([]models.Game, error)

	// FetchProps retrieves the offered prop bets for a game.
	FetchProps(ctx context.Context, gameID string) ([]models.PropBet, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string
	Code    string
	Message string
	Err     error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// Sentinel errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrServerError       = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
