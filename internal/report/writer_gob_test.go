package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestGobWriter_Write(t *testing.T) {
	// 1. Create sample counts
	counts := sampleCounts()
	counts.Malformed = 3

	// 2. Write the snapshot into a temporary directory
	tmpDir := t.TempDir()
	writer := NewGobWriter(tmpDir)
	if writer.Name() != "gob" {
		t.Errorf("Expected writer name 'gob', got '%s'", writer.Name())
	}
	timestamp := "2024-05-04_10-00-00"
	if err := writer.Write(context.Background(), counts, timestamp); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// 3. Verify summary content
	snapshotDir := filepath.Join(tmpDir, timestamp)
	summaryBytes, err := os.ReadFile(filepath.Join(snapshotDir, summaryFileName))
	if err != nil {
		t.Fatalf("Failed to read summary.json: %v", err)
	}
	var summary SummaryData
	if err := json.Unmarshal(summaryBytes, &summary); err != nil {
		t.Fatalf("Failed to unmarshal summary.json: %v", err)
	}
	if summary.AcceptedLines != 5 {
		t.Errorf("Expected AcceptedLines to be 5, got %d", summary.AcceptedLines)
	}
	if summary.MalformedLines != 3 {
		t.Errorf("Expected MalformedLines to be 3, got %d", summary.MalformedLines)
	}
	if summary.DistinctTags != 3 || summary.DistinctPortProto != 4 {
		t.Errorf("Unexpected distinct counts: %+v", summary)
	}

	// 4. Verify gob file content
	snapshot, err := ReadSnapshot(filepath.Join(snapshotDir, snapshotFileName))
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	if snapshot.Timestamp != timestamp {
		t.Errorf("Expected timestamp '%s', got '%s'", timestamp, snapshot.Timestamp)
	}
	if len(snapshot.Tags) != 3 || snapshot.Tags[0].Tag != "Untagged" {
		t.Errorf("Decoded tags do not match. Got: %+v", snapshot.Tags)
	}
	if len(snapshot.PortProtocols) != 4 || snapshot.PortProtocols[3].Port != "443" || snapshot.PortProtocols[3].Count != 2 {
		t.Errorf("Decoded port/protocol rows do not match. Got: %+v", snapshot.PortProtocols)
	}
}

func TestReadSnapshot_Missing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.dat")); err == nil {
		t.Fatalf("Expected an error for a missing snapshot")
	}
}
