package helpers

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// FailureRecorder receives failures that should outlive the process log
type FailureRecorder interface {
	RecordFailure(name string, err error) error
}

// FailureLog appends one line per failure to a plain text file
type FailureLog struct {
	path string
	mu   sync.Mutex
}

// NewFailureLog creates a failure log writing to path
func NewFailureLog(path string) *FailureLog {
	return &FailureLog{path: path}
}

// RecordFailure logs an error to a file with the record name and timestamp
func (l *FailureLog) RecordFailure(name string, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, fileErr := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fileErr != nil {
		return fmt.Errorf("open failure log: %w", fileErr)
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, werr := fmt.Fprintf(f, "[%s] [%s] %s\n", timestamp, name, err.Error())
	return werr
}
