package main

import (
	"fmt"
	"log/slog"

	"sandreceipt/internal/journal"
)

// Opens the print journal, or returns nil when JOURNAL_PATH is unset.
func openJournal(path string) (*journal.Journal, error) {
	if path == "" {
		slog.Info("Print journal disabled")
		return nil, nil
	}
	j, err := journal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open print journal %s:\n%w", path, err)
	}
	slog.Info("Opened print journal", "path", path)
	return j, nil
}
