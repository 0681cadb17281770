package log

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/s-hammon/lazyrng/pkg/config"
	"github.com/sirupsen/logrus"
)

// LogFileName is the append-only log in the working directory.
const LogFileName = "lazyrng.log"

// NewLogger returns a new logger writing to the project-dir log file. The
// curses-style UI owns the terminal, so nothing ever goes to stdout.
func NewLogger(config *config.AppConfig) *logrus.Entry {
	log := logrus.New()
	log.SetLevel(getLogLevel(config))
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}

	file, err := os.OpenFile(filepath.Join(config.ProjectDir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Println("unable to log to file")
		os.Exit(1)
	}
	log.SetOutput(file)

	return log.WithFields(logrus.Fields{
		"debug":   config.Debug,
		"version": config.Version,
	})
}

func getLogLevel(config *config.AppConfig) logrus.Level {
	if strLevel := os.Getenv("LOG_LEVEL"); strLevel != "" {
		level, err := logrus.ParseLevel(strLevel)
		if err == nil {
			return level
		}
	}
	if config.Debug {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
