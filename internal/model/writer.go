package model

import "context"

// Writer defines a generic interface for emitting the counts of a run.
type Writer interface {
	// Name identifies the sink in logs, e.g. "text" or "clickhouse".
	Name() string

	// Write persists or publishes counts. timestamp identifies the run.
	Write(ctx context.Context, counts *Counts, timestamp string) error
}
