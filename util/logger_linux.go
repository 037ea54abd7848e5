//go:build linux

package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// journaldWriter forwards each log line to journald. Lines that carry a
// "Warning:" or "Error" marker get the matching priority.
type journaldWriter struct{}

func (w *journaldWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")

	err = journal.Send(msg, priorityFor(msg), map[string]string{
		"SYSLOG_IDENTIFIER": Name,
	})
	if err != nil {
		return fmt.Fprintf(os.Stderr, "%s", p)
	}
	return len(p), nil
}

func priorityFor(msg string) journal.Priority {
	switch {
	case strings.Contains(msg, "Error"), strings.Contains(msg, "Failed"):
		return journal.PriErr
	case strings.Contains(msg, "Warning"):
		return journal.PriWarning
	default:
		return journal.PriInfo
	}
}

var logWriter io.Writer = os.Stderr

// GetLogWriter returns the writer gin and wish should log through
func GetLogWriter() io.Writer {
	return logWriter
}

func SetupLogging(withJournald bool) {
	if !withJournald {
		return
	}
	if !journal.Enabled() {
		log.Println("Warning: Journald not available on this system; using standard logging")
		return
	}

	logWriter = &journaldWriter{}
	log.SetOutput(logWriter)
	log.SetFlags(0) // journald adds its own timestamps
	log.Println("Logging initialized with journald support")
}
