package driver

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/mdubinko/earleybird/earley"
)

// TraceSink is the trace_sink(event) callback of spec.md §6: the driver
// forwards every recognizer Event to it as recognition proceeds. It is
// exactly earley.Sink, re-exported under the driver's own name so callers
// configuring a Run never need to import package earley just to supply a
// sink.
type TraceSink = earley.Sink

// NewCommonLogSink adapts a TraceSink onto github.com/tliron/commonlog,
// for callers who want the recognizer's PREDICTOR/SCANNER/SCANNER-MATCH/
// COMPLETER events (spec.md §4.2.3) on a real structured-logging backend
// instead of writing their own sink. SCANNER events, which the recognizer
// emits for every scan attempt whether or not the codepoint matches, are
// logged at debug level without the codepoint; every other event is
// notice level.
func NewCommonLogSink(name string) TraceSink {
	log := commonlog.GetLogger(name)
	return earley.SinkFunc(func(e earley.Event) {
		switch e.Op {
		case earley.OpScanner:
			log.Debugf("%s pos=%d rule=%d alt=%d dot=%d origin=%d", e.Op, e.Pos, e.Rule.Int(), e.AltIdx, e.Dot, e.Origin)
		default:
			msg := fmt.Sprintf("%s pos=%d rule=%d alt=%d dot=%d origin=%d", e.Op, e.Pos, e.Rule.Int(), e.AltIdx, e.Dot, e.Origin)
			if e.HasRune {
				msg += fmt.Sprintf(" matched=%q", e.Matched)
			}
			log.Notice(msg)
		}
	})
}
