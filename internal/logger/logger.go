package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Init sets up the process log. Entries go to a file under the user's home
// directory; if the file cannot be created the log falls back to stderr.
// The process log is separate from the on-screen debug/receive logbooks.
func Init() {
	Logger = logrus.New()

	Logger.SetFormatter(&LineFormatter{})
	Logger.SetLevel(logrus.InfoLevel)

	logDir := getLogDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logrus.Errorf("cannot create log directory %s: %v", logDir, err)
		return
	}

	logFile := filepath.Join(logDir, "tmcontrol.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.Errorf("cannot open log file %s: %v", logFile, err)
		return
	}
	Logger.SetOutput(file)
}

// SetLevel applies a configured level name ("DEBUG", "INFO", ...); unknown
// names leave the level unchanged.
func SetLevel(level string) {
	if Logger == nil {
		return
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Logger.Warnf("unknown log level %q", level)
		return
	}
	Logger.SetLevel(parsed)
}

func getLogDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tmcontrol", "logs")
}

func Info(args ...interface{}) {
	if Logger != nil {
		Logger.Info(args...)
	}
}

func Error(args ...interface{}) {
	if Logger != nil {
		Logger.Error(args...)
	}
}

func Debug(args ...interface{}) {
	if Logger != nil {
		Logger.Debug(args...)
	}
}

func Warn(args ...interface{}) {
	if Logger != nil {
		Logger.Warn(args...)
	}
}
