package lookup

import (
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/model"
	"bufio"
	"io"
	"log"
	"math"
	"os"
	"strings"
)

// Table maps a destination port and protocol name to a tag.
// It is built once and only read afterwards.
type Table struct {
	entries map[model.PortProtocol]string
}

// NewTable creates an empty lookup table.
func NewTable() *Table {
	return &Table{entries: make(map[model.PortProtocol]string)}
}

// Len returns the number of distinct port/protocol keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Tag returns the tag for key, or model.UntaggedTag if there is none.
func (t *Table) Tag(key model.PortProtocol) string {
	if tag, ok := t.entries[key]; ok {
		return tag
	}
	return model.UntaggedTag
}

// set stores tag under (port, lowercased protocol). Later calls overwrite earlier ones.
func (t *Table) set(port, protocol, tag string) {
	t.entries[model.PortProtocol{Port: port, Protocol: strings.ToLower(protocol)}] = tag
}

// Load reads a lookup table CSV from filePath.
// On failure the table read so far (empty if the file could not be opened)
// is returned together with a KindUnavailable error, so callers can carry on.
func Load(filePath string) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return NewTable(), errors.Wrap(err, errors.KindUnavailable, "failed to open lookup table")
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a lookup table from r. The first line is a header and is
// always skipped. Data rows are "dstport,protocol,tag"; rows with fewer than
// three fields are logged and skipped, extra fields are ignored.
func Parse(r io.Reader) (*Table, error) {
	table := NewTable()
	scanner := bufio.NewScanner(r)
	// Lines have no length limit.
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)

	// header
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return table, errors.Wrap(err, errors.KindUnavailable, "failed to read lookup table")
		}
		return table, nil
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			log.Printf("Invalid lookup table row %d (skipping): %s", lineNo, line)
			continue
		}
		table.set(parts[0], parts[1], parts[2])
	}

	if err := scanner.Err(); err != nil {
		return table, errors.Wrap(err, errors.KindUnavailable, "failed to read lookup table")
	}
	return table, nil
}
