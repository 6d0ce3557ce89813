package classifier

import (
	"Go2FlowTag/internal/engine/protocol"
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/lookup"
	"Go2FlowTag/internal/metrics"
	"Go2FlowTag/internal/model"
	"bufio"
	"io"
	"log"
	"math"
	"os"
)

// Classifier tags flow log records using a lookup table and counts them.
type Classifier struct {
	table   *lookup.Table
	metrics *metrics.Metrics
}

// New creates a Classifier for table. m may be nil.
func New(table *lookup.Table, m *metrics.Metrics) *Classifier {
	if table == nil {
		table = lookup.NewTable()
	}
	return &Classifier{table: table, metrics: m}
}

// Classify returns the tag and port/protocol key for a single flow log line.
// ok is false for blank lines.
func (c *Classifier) Classify(line string) (tag string, key model.PortProtocol, ok bool, err error) {
	key, ok, err = protocol.ParseLine(line)
	if !ok || err != nil {
		return "", key, ok, err
	}
	return c.table.Tag(key), key, true, nil
}

// Process reads flow log lines from r and adds them to counts. Malformed
// lines are logged and skipped. A read error stops processing; whatever was
// counted before it stays in counts.
func (c *Classifier) Process(r io.Reader, counts *model.Counts) error {
	scanner := bufio.NewScanner(r)
	// Lines have no length limit.
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	for scanner.Scan() {
		line := scanner.Text()
		tag, key, ok, err := c.Classify(line)
		if !ok {
			continue
		}
		if err != nil {
			log.Printf("Invalid flow log line (skipping): %s", line)
			counts.Malformed++
			c.metrics.ObserveMalformed()
			continue
		}

		counts.Add(tag, key)
		c.metrics.ObserveAccepted(tag)
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.KindUnavailable, "failed to read flow log")
	}
	return nil
}

// ProcessFile classifies the flow log at filePath into a fresh Counts.
// The returned Counts is never nil, even alongside an error.
func (c *Classifier) ProcessFile(filePath string) (*model.Counts, error) {
	counts := model.NewCounts()

	file, err := os.Open(filePath)
	if err != nil {
		return counts, errors.Wrap(err, errors.KindUnavailable, "failed to open flow log")
	}
	defer file.Close()

	err = c.Process(file, counts)
	return counts, err
}
