package report

import (
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/model"
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	snapshotFileName = "counts.dat"
	summaryFileName  = "summary.json"
)

// Snapshot is the gob-encoded form of a run's counts.
type Snapshot struct {
	Timestamp     string
	Tags          []model.TagCount
	PortProtocols []model.PortProtocolCount
	Accepted      uint64
	Malformed     uint64
}

// SummaryData holds the metadata for a snapshot, internal to the writer.
type SummaryData struct {
	Timestamp         string `json:"timestamp"`
	AcceptedLines     uint64 `json:"accepted_lines"`
	MalformedLines    uint64 `json:"malformed_lines"`
	DistinctTags      int    `json:"distinct_tags"`
	DistinctPortProto int    `json:"distinct_port_protocols"`
	WrittenAt         string `json:"written_at"`
}

// GobWriter writes each run into its own timestamped directory as a gob
// snapshot plus a JSON summary.
type GobWriter struct {
	rootPath string
}

// NewGobWriter creates a new gob snapshot writer under rootPath.
func NewGobWriter(rootPath string) model.Writer {
	return &GobWriter{rootPath: rootPath}
}

// Name returns the writer type.
func (w *GobWriter) Name() string {
	return "gob"
}

// Write serializes counts to <root>/<timestamp>/counts.dat and summary.json.
func (w *GobWriter) Write(_ context.Context, counts *model.Counts, timestamp string) error {
	// 1. Create timestamped directory
	snapshotDir := filepath.Join(w.rootPath, timestamp)
	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to create snapshot directory")
	}

	// 2. Write the counts
	snapshot := Snapshot{
		Timestamp:     timestamp,
		Tags:          counts.SortedTags(),
		PortProtocols: counts.SortedPortProtocols(),
		Accepted:      counts.Accepted,
		Malformed:     counts.Malformed,
	}
	filePath := filepath.Join(snapshotDir, snapshotFileName)
	file, err := os.Create(filePath)
	if err != nil {
		return errors.Wrap(err, errors.KindUnavailable, fmt.Sprintf("failed to create snapshot file '%s'", filePath))
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(snapshot); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, fmt.Sprintf("failed to encode counts to gob for file '%s'", filePath))
	}

	// 3. Write summary file
	summary := SummaryData{
		Timestamp:         timestamp,
		AcceptedLines:     counts.Accepted,
		MalformedLines:    counts.Malformed,
		DistinctTags:      len(counts.Tags),
		DistinctPortProto: len(counts.PortProtocols),
		WrittenAt:         time.Now().UTC().Format(time.RFC3339),
	}
	summaryFile, err := os.Create(filepath.Join(snapshotDir, summaryFileName))
	if err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to create summary file")
	}
	defer summaryFile.Close()

	jsonEncoder := json.NewEncoder(summaryFile)
	jsonEncoder.SetIndent("", "  ")
	if err := jsonEncoder.Encode(summary); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to encode summary to json")
	}

	return nil
}

// ReadSnapshot decodes a snapshot written by GobWriter.
func ReadSnapshot(filePath string) (*Snapshot, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindUnavailable, "failed to open snapshot")
	}
	defer file.Close()

	var snapshot Snapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot '%s': %w", filePath, err)
	}
	return &snapshot, nil
}
