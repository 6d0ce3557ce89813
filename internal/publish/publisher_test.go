package publish

import (
	"Go2FlowTag/internal/model"
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	counts := model.NewCounts()
	counts.Add("web", model.PortProtocol{Port: "80", Protocol: "tcp"})
	counts.Add("web", model.PortProtocol{Port: "80", Protocol: "tcp"})
	counts.Add(model.UntaggedTag, model.PortProtocol{Port: "53", Protocol: "udp"})
	counts.Malformed = 1

	data, err := Encode(counts, "2024-05-04_10-00-00")
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)

	fields := msg.AsMap()
	assert.Equal(t, "2024-05-04_10-00-00", fields["timestamp"])
	assert.Equal(t, 3.0, fields["accepted"])
	assert.Equal(t, 1.0, fields["malformed"])
	assert.Equal(t, map[string]any{"web": 2.0, "Untagged": 1.0}, fields["tags"])

	rows, ok := fields["port_protocols"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"port": "53", "protocol": "udp", "count": 1.0}, rows[0])
	assert.Equal(t, map[string]any{"port": "80", "protocol": "tcp", "count": 2.0}, rows[1])
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

type fakeConn struct {
	subject  string
	data     []byte
	drained  bool
	drainErr error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return nil
}

func (f *fakeConn) FlushWithContext(context.Context) error { return nil }

func (f *fakeConn) Drain() error {
	f.drained = true
	return f.drainErr
}

func TestPublisher_Write(t *testing.T) {
	fc := &fakeConn{}
	p := &Publisher{nc: fc, subject: "flowtag.reports"}

	counts := model.NewCounts()
	counts.Add("web", model.PortProtocol{Port: "80", Protocol: "tcp"})
	require.NoError(t, p.Write(context.Background(), counts, "2024-05-04_10-00-00"))

	assert.Equal(t, "flowtag.reports", fc.subject)
	msg, err := Decode(fc.data)
	require.NoError(t, err)
	assert.Equal(t, 1.0, msg.AsMap()["accepted"])
}

func TestPublisher_CloseLogsDrainError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	fc := &fakeConn{drainErr: errors.New("nats: connection closed")}
	p := &Publisher{nc: fc}
	p.Close()

	assert.True(t, fc.drained)
	assert.Contains(t, buf.String(), "Error draining NATS connection: nats: connection closed")
	assert.NotContains(t, buf.String(), "drained and closed")
}
