package report

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/model"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// TimestampLayout formats run timestamps in UTC; it is also a valid directory name.
const TimestampLayout = "2006-01-02_15-04-05"

const createTagTableStatement = `
CREATE TABLE IF NOT EXISTS flow_tag_counts (
    Timestamp DateTime,
    Tag       String,
    Count     UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Tag, Timestamp);
`

const createPortProtocolTableStatement = `
CREATE TABLE IF NOT EXISTS flow_port_protocol_counts (
    Timestamp DateTime,
    Port      String,
    Protocol  LowCardinality(String),
    Count     UInt64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Port, Protocol, Timestamp);
`

// ClickHouseWriter implements the model.Writer interface for ClickHouse.
type ClickHouseWriter struct {
	conn driver.Conn
}

// NewClickHouseWriter connects to ClickHouse and ensures both count tables exist.
func NewClickHouseWriter(ctx context.Context, cfg config.ClickHouseConfig) (model.Writer, error) {
	conn, err := connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	for _, stmt := range []string{createTagTableStatement, createPortProtocolTableStatement} {
		if err := conn.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}
	log.Println("Successfully connected to ClickHouse and ensured tables exist.")

	return &ClickHouseWriter{conn: conn}, nil
}

func connect(ctx context.Context, cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// Name returns the writer type.
func (w *ClickHouseWriter) Name() string {
	return "clickhouse"
}

// Write inserts one row per tag and one row per port/protocol pair.
func (w *ClickHouseWriter) Write(ctx context.Context, counts *model.Counts, timestamp string) error {
	runTime := ParseTimestamp(timestamp)

	tagRows, portRows := counts.SortedTags(), counts.SortedPortProtocols()
	if len(tagRows) == 0 {
		return nil // Nothing to write
	}

	batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO flow_tag_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare tag batch: %w", err)
	}
	for _, row := range tagRows {
		if err := batch.Append(runTime, row.Tag, row.Count); err != nil {
			return fmt.Errorf("failed to append tag row to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send tag batch: %w", err)
	}

	batch, err = w.conn.PrepareBatch(ctx, "INSERT INTO flow_port_protocol_counts")
	if err != nil {
		return fmt.Errorf("failed to prepare port/protocol batch: %w", err)
	}
	for _, row := range portRows {
		if err := batch.Append(runTime, row.Port, row.Protocol, row.Count); err != nil {
			return fmt.Errorf("failed to append port/protocol row to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send port/protocol batch: %w", err)
	}

	log.Printf("Wrote %d tag rows and %d port/protocol rows to ClickHouse", len(tagRows), len(portRows))
	return nil
}

// Close closes the ClickHouse connection.
func (w *ClickHouseWriter) Close() error {
	return w.conn.Close()
}

// ParseTimestamp parses a UTC run timestamp in TimestampLayout, falling back to
// the current time when it does not parse.
func ParseTimestamp(timestamp string) time.Time {
	t, err := time.Parse(TimestampLayout, timestamp)
	if err != nil {
		return time.Now().UTC().Truncate(time.Second)
	}
	return t
}
