// Package logging sets up the structured logger shared across the service,
// following the corpus convention of a package-level logrus instance with
// request-scoped fields (conn, db) attached per call site rather
// than a global mutable logger passed around by hand.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared structured logger. Tests and the CLI may reconfigure
// its level and formatter; production defaults to text output on stderr.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it, defaulting to Info on an unrecognized name.
func SetLevel(name string) {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// Conn returns a logger scoped to one connection token and database name,
// for the connect and per-row logging the Service Dispatcher emits.
func Conn(token uint64, db string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{"conn": token, "db": db})
}
