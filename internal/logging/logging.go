package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps textual levels onto logrus levels, defaulting to info.
func ParseLevel(raw string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Setup configures the standard logrus logger, which the rest of the service logs through.
func Setup(w io.Writer, level, format string) *logrus.Logger {
	if w == nil {
		w = os.Stdout
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
