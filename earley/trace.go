package earley

import gram "github.com/mdubinko/earleybird/grammar"

// Op names a structured trace event kind (spec.md §4.2.3).
type Op string

const (
	OpPredictor    Op = "PREDICTOR"
	OpScanner      Op = "SCANNER"
	OpScannerMatch Op = "SCANNER-MATCH"
	OpCompleter    Op = "COMPLETER"
)

// Event is one structured trace record. Fields beyond Op/Pos are
// populated as applicable to that op and left zero otherwise; HasRune
// marks whether Matched is set. Deciding which fields to print is left to
// the Sink.
type Event struct {
	Op      Op
	Pos     int
	Rule    gram.NonTerminalId
	AltIdx  int
	Dot     int
	Origin  int
	Matched rune
	HasRune bool
}

// Sink receives trace events during recognition. A nil Sink disables
// tracing entirely; Recognize checks for nil before constructing events,
// so tracing costs nothing when unused.
type Sink interface {
	Trace(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Trace(e Event) { f(e) }

// PositionFilter wraps a Sink so that only events at the given input
// position are forwarded, per spec.md §4.2.3's "optionally filtered by a
// caller-supplied position".
func PositionFilter(pos int, sink Sink) Sink {
	return SinkFunc(func(e Event) {
		if e.Pos == pos {
			sink.Trace(e)
		}
	})
}
