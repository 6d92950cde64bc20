package logger

import (
	"io"
	"log"
	"os"
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

var (
	InfoLogger  = newLogger(os.Stdout, "INFO: ")
	ErrorLogger = newLogger(os.Stderr, "ERROR: ")
	DebugLogger = newLogger(os.Stdout, "DEBUG: ")
	WarnLogger  = newLogger(os.Stdout, "WARN: ")
)

func newLogger(out io.Writer, prefix string) *log.Logger {
	return log.New(out, prefix, flags)
}

func Info(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

func Error(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}

// Debug logs only outside production deployments.
func Debug(format string, v ...interface{}) {
	if os.Getenv("ENVIRONMENT") == "development" {
		DebugLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	WarnLogger.Printf(format, v...)
}

// LogActivityError records a failed notification write. Notifications are
// side effects and never fail the operation that produced them.
func LogActivityError(activityType, userID string, err error) {
	Warn("Activity write failed: type=%s, user=%s, error=%v", activityType, userID, err)
}
