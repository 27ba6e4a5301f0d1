// Package logger provides the logrus setup and audit logging shared by the
// prediction daemon and CLIs.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variable consulted for formatter selection. Mirrors the
// app.environment config key but is readable before config loads.
const environmentVar = "PROP_EDGE_ENVIRONMENT"

// NewLogger builds the shared application logger. Production output is JSON
// so prediction and slate fields stay machine-parseable; development output
// is colored text with full timestamps. An unparseable level falls back to
// info rather than failing startup.
func NewLogger(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	if err != nil {
		level = logrus.InfoLevel
		log.WithField("log_level", logLevel).Warn("Unknown log level, using info")
	}
	log.SetLevel(level)

	if productionEnvironment() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			ForceColors:     true,
			TimestampFormat: time.RFC3339,
		})
	}
	return log
}

func productionEnvironment() bool {
	env := os.Getenv(environmentVar)
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	return strings.EqualFold(env, "production")
}
