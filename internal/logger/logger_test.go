package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger(" WARN ")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("shouting")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	t.Setenv("PROP_EDGE_ENVIRONMENT", "production")
	log := NewLogger("info")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	require.True(t, ok, "production environment should select the JSON formatter")
}

func TestNewLoggerDevelopmentUsesText(t *testing.T) {
	t.Setenv("PROP_EDGE_ENVIRONMENT", "development")
	t.Setenv("ENVIRONMENT", "")
	log := NewLogger("info")
	formatter, ok := log.Formatter.(*logrus.TextFormatter)
	require.True(t, ok, "development environment should select the text formatter")
	assert.True(t, formatter.FullTimestamp)
}
