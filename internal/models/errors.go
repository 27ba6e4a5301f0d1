package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrUnsupportedSport = errors.New("unsupported sport")
	ErrUnsupportedStat  = errors.New("unsupported stat")
	ErrInvalidID        = errors.New("invalid ID format")
	ErrNoHistoricalData = errors.New("no historical data available")
	ErrCatalogInvalid   = errors.New("stat catalog is invalid")
)
