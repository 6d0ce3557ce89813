package main

import (
	"Go2FlowTag/internal/model"
	"Go2FlowTag/internal/report"
	"fmt"
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts/gobana/main.go <counts.dat>")
		os.Exit(1)
	}

	snapshot, err := report.ReadSnapshot(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to decode snapshot: %v", err)
	}

	counts := model.NewCounts()
	for _, row := range snapshot.Tags {
		counts.Tags[row.Tag] = row.Count
	}
	for _, row := range snapshot.PortProtocols {
		counts.PortProtocols[model.PortProtocol{Port: row.Port, Protocol: row.Protocol}] = row.Count
	}

	fmt.Printf("Snapshot %s: %d accepted, %d malformed\n\n", snapshot.Timestamp, snapshot.Accepted, snapshot.Malformed)
	if err := report.Render(os.Stdout, counts); err != nil {
		log.Fatalf("Failed to render snapshot: %v", err)
	}
}
