package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared structured logger. JSON output so the log shipper can
// index module/operation fields.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
