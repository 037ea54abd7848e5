//go:build !linux

package util

import (
	"io"
	"log"
	"os"
)

var logWriter io.Writer = os.Stderr

// GetLogWriter returns the writer gin and wish should log through
func GetLogWriter() io.Writer {
	return logWriter
}

// SetupLogging keeps standard logging; journald only exists on Linux.
func SetupLogging(withJournald bool) {
	if withJournald {
		log.Println("Warning: Journald logging is not supported on this operating system, using stderr")
	}
}
