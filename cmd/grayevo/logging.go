package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const (
	logDir      = "logs"
	logFileName = "grayevo.log"
)

// setupLogging returns a file-backed logger in debug mode and a discarding one otherwise
// The terminal stays reserved for progress output and the live view
// The returned file is nil when logging is disabled
func setupLogging(debug bool) (logr.Logger, *os.File) {
	if !debug {
		return logr.Discard(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return logr.Discard(), nil
	}

	logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return logr.Discard(), nil
	}

	stdr.SetVerbosity(1)
	logger := stdr.NewWithOptions(log.New(logFile, "", log.LstdFlags|log.Lmicroseconds), stdr.Options{LogCaller: stdr.Error})
	return logger.WithName("grayevo"), logFile
}
