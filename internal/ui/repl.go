package ui

import (
	"context"
	"fmt"
	"strings"

	"lamb/internal/diag"
	"lamb/internal/diagfmt"
	"lamb/internal/driver"
	"lamb/internal/histstore"
)

const helpText = `Enter a definition (Name = term;) or a term to normalize.
Commands:
  :load <path>   load the definitions of a module
  :aliases       list the bound aliases
  :show <Name>   print the term bound to Name
  :help          this text
  :quit          leave the REPL`

// Repl runs REPL commands against a session. It has no terminal state of
// its own, so the interactive model and the plain line loop share it.
type Repl struct {
	Session *driver.Session
	// History is optional; lines are recorded when it is set.
	History *histstore.Store
	Color   bool
}

// Output is the rendered answer to one input line.
type Output struct {
	Text string
	// Failed is set when the input produced errors.
	Failed bool
	Quit   bool
}

// Execute handles one input line. The error is reserved for cancellation.
func (r *Repl) Execute(ctx context.Context, line string) (Output, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed != "" && r.History != nil {
		// История не критична, ошибку глотаем.
		_, _ = r.History.Add(trimmed)
	}
	if strings.HasPrefix(trimmed, ":") {
		return r.command(ctx, trimmed)
	}

	reply, err := r.Session.Submit(ctx, line)
	if err != nil {
		return Output{}, err
	}
	var b strings.Builder
	failed := r.writeDiagnostics(&b, reply.Diagnostics)
	switch reply.Kind {
	case driver.ReplyDefined:
		verb := "defined"
		if reply.Redefined {
			verb = "redefined"
		}
		fmt.Fprintf(&b, "%s %s\n", reply.Name, verb)
	case driver.ReplyNormal:
		b.WriteString(reply.Normal.String())
		b.WriteString("\n")
		b.WriteString(stepsNote(reply.Steps, reply.Cached))
		b.WriteString("\n")
	case driver.ReplyFailed:
		failed = true
	}
	return Output{Text: b.String(), Failed: failed}, nil
}

func (r *Repl) command(ctx context.Context, line string) (Output, error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "q", "quit", "exit":
		return Output{Quit: true}, nil
	case "h", "help":
		return Output{Text: helpText + "\n"}, nil
	case "aliases":
		names := r.Session.Aliases()
		if len(names) == 0 {
			return Output{Text: "no aliases bound\n"}, nil
		}
		return Output{Text: strings.Join(names, " ") + "\n"}, nil
	case "show":
		t, ok := r.Session.Lookup(arg)
		if !ok {
			return Output{Text: fmt.Sprintf("alias %q is not bound\n", arg), Failed: true}, nil
		}
		return Output{Text: fmt.Sprintf("%s = %s\n", arg, t)}, nil
	case "load":
		if arg == "" {
			return Output{Text: "usage: :load <path>\n", Failed: true}, nil
		}
		res, err := r.Session.Load(ctx, arg)
		if err != nil {
			if ctx.Err() != nil {
				return Output{}, err
			}
			return Output{Text: err.Error() + "\n", Failed: true}, nil
		}
		var b strings.Builder
		failed := r.writeDiagnostics(&b, res.Bag.Items())
		bound := 0
		for _, d := range res.Elab.Defs {
			if d.Bound && d.Core != nil {
				bound++
			}
		}
		fmt.Fprintf(&b, "loaded %d of %d definitions from %s\n", bound, len(res.Elab.Defs), arg)
		return Output{Text: b.String(), Failed: failed}, nil
	}
	return Output{Text: fmt.Sprintf("unknown command :%s (try :help)\n", name), Failed: true}, nil
}

func (r *Repl) writeDiagnostics(b *strings.Builder, items []diag.Diagnostic) bool {
	if len(items) == 0 {
		return false
	}
	bag := diag.NewBag(0)
	for _, d := range items {
		bag.Add(d)
	}
	_ = diagfmt.Pretty(b, bag, r.Session.FileSet, diagfmt.PrettyOpts{Color: r.Color, ShowNotes: true})
	return bag.HasErrors()
}

func stepsNote(steps int, cached bool) string {
	note := fmt.Sprintf("(%d steps", steps)
	if steps == 1 {
		note = "(1 step"
	}
	if cached {
		note += ", cached"
	}
	return note + ")"
}
