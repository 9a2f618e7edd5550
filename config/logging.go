package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const defaultLogFile = "logs/leads-api.log"

// LogWriter receives every log line the service produces: the stdlib logger
// used by services and controllers, gin's request logger and gorm's SQL
// logger (see OpenDatabase). It falls back to stdout alone when no log file
// can be opened.
var LogWriter io.Writer = os.Stdout

// LogFilePath is the file the admin /logs view tails. LOG_FILE overrides the
// default under logs/.
func LogFilePath() string {
	return filepath.Clean(getEnv("LOG_FILE", defaultLogFile))
}

// InitLogging points LogWriter and the stdlib logger at stdout plus the log
// file. The returned writer is handed to the gin request logger; the caller
// closes the file on shutdown.
func InitLogging() (*os.File, io.Writer) {
	file, err := openLogFile(LogFilePath())
	if err != nil {
		log.Printf("Warning: request and SQL logs go to stdout only: %v", err)
		LogWriter = os.Stdout
	} else {
		LogWriter = io.MultiWriter(os.Stdout, file)
	}
	log.SetOutput(LogWriter)
	return file, LogWriter
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
