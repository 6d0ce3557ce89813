package publish

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/model"
	"context"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// conn is the subset of *nats.Conn used by Publisher.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// Publisher publishes the counts of each run to a NATS subject.
// It implements the model.Writer interface.
type Publisher struct {
	nc      conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Name returns the writer type.
func (p *Publisher) Name() string {
	return "nats"
}

// Write serializes counts to a protobuf Struct and publishes it.
func (p *Publisher) Write(ctx context.Context, counts *model.Counts, timestamp string) error {
	data, err := Encode(counts, timestamp)
	if err != nil {
		return err
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to '%s': %w", p.subject, err)
	}
	return p.nc.FlushWithContext(ctx)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		log.Printf("Error draining NATS connection: %v", err)
		return
	}
	log.Println("NATS connection drained and closed.")
}

// Encode converts counts into a serialized google.protobuf.Struct with keys
// "timestamp", "accepted", "malformed", "tags" and "port_protocols".
func Encode(counts *model.Counts, timestamp string) ([]byte, error) {
	msg, err := toStruct(counts, timestamp)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

// Decode parses a payload produced by Encode.
func Decode(data []byte) (*structpb.Struct, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report message: %w", err)
	}
	return &msg, nil
}

func toStruct(counts *model.Counts, timestamp string) (*structpb.Struct, error) {
	tags := make(map[string]any, len(counts.Tags))
	for tag, n := range counts.Tags {
		tags[tag] = float64(n)
	}

	rows := counts.SortedPortProtocols()
	portProtocols := make([]any, len(rows))
	for i, row := range rows {
		portProtocols[i] = map[string]any{
			"port":     row.Port,
			"protocol": row.Protocol,
			"count":    float64(row.Count),
		}
	}

	msg, err := structpb.NewStruct(map[string]any{
		"timestamp":      timestamp,
		"accepted":       float64(counts.Accepted),
		"malformed":      float64(counts.Malformed),
		"tags":           tags,
		"port_protocols": portProtocols,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build report message: %w", err)
	}
	return msg, nil
}
