package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounts_Add(t *testing.T) {
	c := NewCounts()
	c.Add("web", PortProtocol{Port: "80", Protocol: "tcp"})
	c.Add("web", PortProtocol{Port: "80", Protocol: "tcp"})
	c.Add(UntaggedTag, PortProtocol{Port: "53", Protocol: "udp"})

	assert.Equal(t, uint64(3), c.Accepted)
	assert.Equal(t, uint64(2), c.Tags["web"])
	assert.Equal(t, uint64(1), c.Tags[UntaggedTag])
	assert.Equal(t, uint64(2), c.PortProtocols[PortProtocol{"80", "tcp"}])
}

func TestCounts_Sorted(t *testing.T) {
	c := NewCounts()
	c.Add("zeta", PortProtocol{"443", "tcp"})
	c.Add("alpha", PortProtocol{"25", "tcp"})
	c.Add("alpha", PortProtocol{"25", "udp"})
	c.Add("Untagged", PortProtocol{"1024", "other"})

	assert.Equal(t, []TagCount{
		{Tag: "Untagged", Count: 1},
		{Tag: "alpha", Count: 2},
		{Tag: "zeta", Count: 1},
	}, c.SortedTags())

	assert.Equal(t, []PortProtocolCount{
		{Port: "1024", Protocol: "other", Count: 1},
		{Port: "25", Protocol: "tcp", Count: 1},
		{Port: "25", Protocol: "udp", Count: 1},
		{Port: "443", Protocol: "tcp", Count: 1},
	}, c.SortedPortProtocols())
}

func TestPortProtocol_String(t *testing.T) {
	assert.Equal(t, "80,tcp", PortProtocol{Port: "80", Protocol: "tcp"}.String())
}
