package diag

import "lamb/internal/source"

// DedupReporter forwards each distinct diagnostic once. Two reports are the
// same when code, severity, primary span and message all match; notes are
// not compared. Elaboration of one term can reach the same unbound name
// through several paths, which is where duplicates come from.
type DedupReporter struct {
	next    Reporter
	seen    map[seenKey]struct{}
	dropped int
}

type seenKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[seenKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	k := seenKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[k]; dup {
		r.dropped++
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Dropped returns how many duplicates were swallowed.
func (r *DedupReporter) Dropped() int { return r.dropped }
