package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// RunInteractive runs the REPL as a Bubble Tea program on the terminal.
func RunInteractive(ctx context.Context, r *Repl, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewReplModel(ctx, r), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return err
	}
	return Err(final)
}

// RunPlain reads one input per line until EOF or :quit. It is used when
// stdin is not a terminal; prompts are printed only when prompt is set.
func RunPlain(ctx context.Context, r *Repl, in io.Reader, out io.Writer, prompt bool) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for {
		if prompt {
			fmt.Fprint(out, "λ> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		res, err := r.Execute(ctx, sc.Text())
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, res.Text); err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
	}
}
