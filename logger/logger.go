package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance for the whole application.
var Log = logrus.New()

// Init configures the global logger. It must be called once at startup,
// before any other package logs anything.
func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
