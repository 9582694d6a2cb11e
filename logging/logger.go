package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BootstrapLogger() {
	Log = &logrus.Logger{
		Formatter: &logrus.TextFormatter{
			DisableColors: false,
			DisableQuote:  false,
			FullTimestamp: true,
		},
		Level: logrus.DebugLevel,
	}

	Log.SetReportCaller(true)
	Log.Out = os.Stdout

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		Log.SetLevel(level)
	}
}
