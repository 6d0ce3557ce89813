package factory

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/model"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedWriter struct{ name string }

func (w *namedWriter) Name() string { return w.name }

func (w *namedWriter) Write(context.Context, *model.Counts, string) error { return nil }

func init() {
	RegisterWriter("fake", func(_ context.Context, def config.WriterDef) (model.Writer, error) {
		return &namedWriter{name: "fake:" + def.Text.Path}, nil
	})
	RegisterWriter("broken", func(context.Context, config.WriterDef) (model.Writer, error) {
		return nil, stderrors.New("connection refused")
	})
}

func TestCreateWriters(t *testing.T) {
	cfg := &config.Config{Writers: []config.WriterDef{
		{Type: "fake", Enabled: true, Text: config.TextConfig{Path: "a"}},
		{Type: "fake", Enabled: false, Text: config.TextConfig{Path: "b"}},
		{Type: "broken", Enabled: true},
		{Type: "fake", Enabled: true, Text: config.TextConfig{Path: "c"}},
	}}

	writers, err := CreateWriters(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, writers, 2)
	assert.Equal(t, "fake:a", writers[0].Name())
	assert.Equal(t, "fake:c", writers[1].Name())
}

func TestCreateWriters_UnknownType(t *testing.T) {
	cfg := &config.Config{Writers: []config.WriterDef{{Type: "carrier-pigeon", Enabled: true}}}

	_, err := CreateWriters(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestRegisterWriter_Duplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterWriter("fake", nil)
	})
}

func TestTypes(t *testing.T) {
	types := Types()
	assert.Contains(t, types, "fake")
	assert.Contains(t, types, "broken")
	assert.IsIncreasing(t, types)
}
