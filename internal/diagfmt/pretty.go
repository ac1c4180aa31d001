package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lamb/internal/diag"
	"lamb/internal/source"
)

type palette struct {
	err, warn, info, note, bold, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.bold, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes every diagnostic of bag (sort it first) as
//
//	path:line:col: error SEM3001: unbound variable 'y'
//	   2 | A = x => y;
//	     |          ^
//	   = note: path:line:col: did you mean 'x'?
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p, tab); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette, tab int) error {
	sevColor := p.severity(d.Severity)
	head := sevColor.Sprintf("%s %s", d.Severity.Label(), d.Code.ID())
	file := fileOf(fs, d.Primary)
	if file == nil {
		_, err := fmt.Fprintf(w, "%s: %s\n", head, p.bold.Sprint(d.Message))
		return err
	}

	start, _ := fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", displayPath(file, opts.PathMode, opts.BaseDir), start.Line, start.Col)
	if _, err := fmt.Fprintf(w, "%s: %s: %s\n", p.bold.Sprint(loc), head, p.bold.Sprint(d.Message)); err != nil {
		return err
	}
	if err := excerpt(w, file, fs, d.Primary, sevColor, p, tab); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		nf := fileOf(fs, n.Span)
		if nf == nil {
			if _, err := fmt.Fprintf(w, "   %s %s\n", p.gutter.Sprint("="), p.note.Sprint("note: "+n.Msg)); err != nil {
				return err
			}
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		nloc := fmt.Sprintf("%s:%d:%d", displayPath(nf, opts.PathMode, opts.BaseDir), ns.Line, ns.Col)
		if _, err := fmt.Fprintf(w, "   %s %s %s: %s\n", p.gutter.Sprint("="), p.note.Sprint("note:"), nloc, n.Msg); err != nil {
			return err
		}
	}
	return nil
}

// excerpt prints the first line of sp with a caret underline. Widths are
// display widths, so wide runes and tabs line up.
func excerpt(w io.Writer, file *source.File, fs *source.FileSet, sp source.Span, c *color.Color, p palette, tab int) error {
	start, end := fs.Resolve(sp)
	line := file.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(max(int(end.Col)-1, col), len(line))
	}

	expand := func(s string) string { return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tab)) }
	pad := runewidth.StringWidth(expand(line[:col]))
	width := max(runewidth.StringWidth(expand(line[col:endCol])), 1)

	num := fmt.Sprintf("%d", start.Line)
	gutter := strings.Repeat(" ", len(num))
	if _, err := fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), expand(line)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, " %s %s %s%s\n", gutter, p.gutter.Sprint("|"), strings.Repeat(" ", pad), c.Sprint("^"+strings.Repeat("~", width-1)))
	return err
}

// Summary writes "N errors, M warnings" or nothing when the bag is empty.
func Summary(w io.Writer, bag *diag.Bag) error {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s, %s\n", plural(errs, "error"), plural(warns, "warning"))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
