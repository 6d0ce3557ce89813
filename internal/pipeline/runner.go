package pipeline

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/engine/classifier"
	"Go2FlowTag/internal/factory"
	"Go2FlowTag/internal/lookup"
	"Go2FlowTag/internal/metrics"
	"Go2FlowTag/internal/model"
	"Go2FlowTag/internal/report"
	"context"
	"io"
	"log"
	"time"

	_ "Go2FlowTag/internal/publish" // Registers the nats writer
)

// Result is the outcome of one run.
type Result struct {
	Timestamp     string
	LookupEntries int
	Counts        *model.Counts

	// Errors lists the recoverable failures of the run, in order.
	Errors []error
	// FailedWriters names the writers whose Write returned an error.
	FailedWriters []string
}

// WriterFailed reports whether the named writer failed during the run.
func (r *Result) WriterFailed(name string) bool {
	for _, n := range r.FailedWriters {
		if n == name {
			return true
		}
	}
	return false
}

// Runner executes the load, classify and write steps strictly in sequence.
type Runner struct {
	cfg     *config.Config
	writers []model.Writer
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRunner creates a Runner emitting to writers. m may be nil.
func NewRunner(cfg *config.Config, writers []model.Writer, m *metrics.Metrics) *Runner {
	return &Runner{cfg: cfg, writers: writers, metrics: m, now: time.Now}
}

// NewRunnerFromConfig creates a Runner with the writers enabled in cfg.
func NewRunnerFromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Runner, error) {
	writers, err := factory.CreateWriters(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRunner(cfg, writers, m), nil
}

// Writers returns the sinks of this runner.
func (r *Runner) Writers() []model.Writer {
	return r.writers
}

// Run loads the lookup table, classifies the flow log and hands the counts
// to every writer. Input failures are logged and the run continues with
// what was read; a failing writer does not stop the others. The returned
// error is non-nil only when ctx is done before the run completes.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{Timestamp: r.now().UTC().Format(report.TimestampLayout)}

	// 1. Load the lookup table
	table, err := lookup.Load(r.cfg.Input.LookupTable)
	if err != nil {
		log.Printf("Error reading lookup table: %v", err)
		result.Errors = append(result.Errors, err)
	}
	result.LookupEntries = table.Len()
	r.metrics.SetLookupEntries(table.Len())

	// 2. Classify the flow log
	counts, err := classifier.New(table, r.metrics).ProcessFile(r.cfg.Input.FlowLogs)
	if err != nil {
		log.Printf("Error reading flow log: %v", err)
		result.Errors = append(result.Errors, err)
	}
	result.Counts = counts

	// 3. Emit to every writer
	for _, w := range r.writers {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := w.Write(ctx, counts, result.Timestamp); err != nil {
			log.Printf("Error writing output with writer '%s': %v", w.Name(), err)
			r.metrics.ObserveWriterError(w.Name())
			result.Errors = append(result.Errors, err)
			result.FailedWriters = append(result.FailedWriters, w.Name())
		}
	}

	r.metrics.ObserveRun()
	return result, nil
}

// Close releases writers that hold connections.
func (r *Runner) Close() {
	for _, w := range r.writers {
		switch c := w.(type) {
		case io.Closer:
			if err := c.Close(); err != nil {
				log.Printf("Error closing writer '%s': %v", w.Name(), err)
			}
		case interface{ Close() }:
			c.Close()
		}
	}
}
