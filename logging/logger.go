package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BootstrapLogger(env string) {
	Log = logrus.New()
	Log.Out = os.Stdout
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if env == "production" {
		Log.SetLevel(logrus.InfoLevel)
	} else {
		Log.SetLevel(logrus.DebugLevel)
	}
}
