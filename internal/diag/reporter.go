package diag

import "lamb/internal/source"

// Reporter — минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, LimitReporter, NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, primary, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// LimitReporter forwards at most Max error diagnostics; warnings and infos
// always pass. Max == 0 means no limit.
type LimitReporter struct {
	Next   Reporter
	Max    uint
	errors uint
}

func (r *LimitReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Next == nil {
		return
	}
	if sev == SevError {
		r.errors++
		if r.Max != 0 && r.errors > r.Max {
			return
		}
	}
	r.Next.Report(code, sev, primary, msg, notes)
}

// Suppressed returns how many errors were dropped because of the limit.
func (r *LimitReporter) Suppressed() uint {
	if r.Max == 0 || r.errors <= r.Max {
		return 0
	}
	return r.errors - r.Max
}

// Counter counts what passes through it, by severity.
type Counter struct {
	Next     Reporter
	Errors   int
	Warnings int
}

func (c *Counter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	switch sev {
	case SevError:
		c.Errors++
	case SevWarning:
		c.Warnings++
	}
	if c.Next != nil {
		c.Next.Report(code, sev, primary, msg, notes)
	}
}
