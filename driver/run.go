package driver

import "github.com/google/uuid"

// Run identifies one recognize-and-serialize invocation with a run ID
// held on the Run itself. The ID is not attached to trace events, and
// the tester package parses with a nil Run, so its reports carry none.
type Run struct {
	ID     uuid.UUID
	Config Config
	Sink   TraceSink
}

// NewRun stamps a fresh run ID. A zero Config falls back to
// DefaultConfig; a nil Sink disables tracing regardless of Config.Trace.
func NewRun(cfg Config, sink TraceSink) *Run {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Run{
		ID:     uuid.New(),
		Config: cfg,
		Sink:   sink,
	}
}

func (r *Run) traceSink() TraceSink {
	if r == nil || !r.Config.Trace {
		return nil
	}
	return r.Sink
}
