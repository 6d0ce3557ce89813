package model

import "sort"

// UntaggedTag is applied to flows whose port/protocol pair has no lookup entry.
const UntaggedTag = "Untagged"

// PortProtocol identifies a destination port and protocol name pair, e.g.
// {"443", "tcp"}. The port is kept as the raw string from the input.
type PortProtocol struct {
	Port     string
	Protocol string
}

// String renders the pair as "port,protocol".
func (k PortProtocol) String() string {
	return k.Port + "," + k.Protocol
}

// Less orders pairs by port, then protocol, both lexicographically.
func (k PortProtocol) Less(o PortProtocol) bool {
	if k.Port != o.Port {
		return k.Port < o.Port
	}
	return k.Protocol < o.Protocol
}

// TagCount is a single row of the tag table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count uint64 `json:"count"`
}

// PortProtocolCount is a single row of the port/protocol table.
type PortProtocolCount struct {
	Port     string `json:"port"`
	Protocol string `json:"protocol"`
	Count    uint64 `json:"count"`
}

// Counts holds the aggregates of one classification run. Each accepted flow
// record adds exactly one to Tags and one to PortProtocols.
type Counts struct {
	Tags          map[string]uint64
	PortProtocols map[PortProtocol]uint64

	// Accepted is the number of records counted; Malformed the number of
	// non-empty lines skipped by the shape check.
	Accepted  uint64
	Malformed uint64
}

// NewCounts creates an empty Counts.
func NewCounts() *Counts {
	return &Counts{
		Tags:          make(map[string]uint64),
		PortProtocols: make(map[PortProtocol]uint64),
	}
}

// Add records one accepted flow under tag and key.
func (c *Counts) Add(tag string, key PortProtocol) {
	c.Tags[tag]++
	c.PortProtocols[key]++
	c.Accepted++
}

// SortedTags returns the tag table ordered by tag.
func (c *Counts) SortedTags() []TagCount {
	rows := make([]TagCount, 0, len(c.Tags))
	for tag, n := range c.Tags {
		rows = append(rows, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Tag < rows[j].Tag })
	return rows
}

// SortedPortProtocols returns the port/protocol table ordered by port, then protocol.
func (c *Counts) SortedPortProtocols() []PortProtocolCount {
	keys := make([]PortProtocol, 0, len(c.PortProtocols))
	for k := range c.PortProtocols {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	rows := make([]PortProtocolCount, len(keys))
	for i, k := range keys {
		rows[i] = PortProtocolCount{Port: k.Port, Protocol: k.Protocol, Count: c.PortProtocols[k]}
	}
	return rows
}
