package main

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/pipeline"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessMessage(t *testing.T) {
	cfg := config.Default()

	msg, ok := successMessage(cfg, &pipeline.Result{})
	assert.True(t, ok)
	assert.Equal(t, "Output written to: "+config.DefaultReportPath, msg)
}

func TestSuccessMessage_TextWriterFailed(t *testing.T) {
	cfg := config.Default()

	_, ok := successMessage(cfg, &pipeline.Result{FailedWriters: []string{"text"}})
	assert.False(t, ok)
}

func TestSuccessMessage_OtherWriterFailed(t *testing.T) {
	cfg := config.Default()

	_, ok := successMessage(cfg, &pipeline.Result{FailedWriters: []string{"clickhouse"}})
	assert.True(t, ok)
}

func TestSuccessMessage_NoTextWriter(t *testing.T) {
	cfg := &config.Config{Writers: []config.WriterDef{{Type: "gob", Enabled: true}}}

	_, ok := successMessage(cfg, &pipeline.Result{})
	assert.False(t, ok)
}
