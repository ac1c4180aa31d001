package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"lamb/internal/driver"
	"lamb/internal/histstore"
)

func newRepl(t *testing.T) *Repl {
	t.Helper()
	return &Repl{Session: driver.NewSession(driver.SessionOptions{MaxSteps: 10_000})}
}

func TestReplExecute(t *testing.T) {
	ctx := context.Background()
	r := newRepl(t)

	out, err := r.Execute(ctx, "Id = x => x;")
	require.NoError(t, err)
	require.Equal(t, "Id defined\n", out.Text)

	out, err = r.Execute(ctx, "Id = y => y;")
	require.NoError(t, err)
	require.Equal(t, "Id redefined\n", out.Text)

	out, err = r.Execute(ctx, "Id Id")
	require.NoError(t, err)
	require.False(t, out.Failed)
	require.True(t, strings.HasPrefix(out.Text, "y => y\n("), out.Text)

	out, err = r.Execute(ctx, "x => y")
	require.NoError(t, err)
	require.True(t, out.Failed)
	require.Contains(t, out.Text, "SEM3001")

	out, err = r.Execute(ctx, "   ")
	require.NoError(t, err)
	require.Empty(t, out.Text)
}

func TestReplCommands(t *testing.T) {
	ctx := context.Background()
	r := newRepl(t)

	out, _ := r.Execute(ctx, ":aliases")
	require.Equal(t, "no aliases bound\n", out.Text)

	path := filepath.Join(t.TempDir(), "k.lc")
	require.NoError(t, os.WriteFile(path, []byte("K = (x, y) => x;\nId = x => x;\n"), 0o600))
	out, err := r.Execute(ctx, ":load "+path)
	require.NoError(t, err)
	require.False(t, out.Failed)
	require.Contains(t, out.Text, "loaded 2 of 2 definitions")

	out, _ = r.Execute(ctx, ":aliases")
	require.Equal(t, "Id K\n", out.Text)

	out, _ = r.Execute(ctx, ":show K")
	require.Equal(t, "K = x => y => x\n", out.Text)

	out, _ = r.Execute(ctx, ":show Nope")
	require.True(t, out.Failed)

	out, _ = r.Execute(ctx, ":load "+filepath.Join(t.TempDir(), "missing.lc"))
	require.True(t, out.Failed)

	out, _ = r.Execute(ctx, ":frobnicate")
	require.True(t, out.Failed)
	require.Contains(t, out.Text, ":help")

	out, _ = r.Execute(ctx, ":quit")
	require.True(t, out.Quit)
}

func TestReplRecordsHistory(t *testing.T) {
	store, err := histstore.Open(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer store.Close()

	r := newRepl(t)
	r.History = store
	_, err = r.Execute(context.Background(), "Id = x => x;")
	require.NoError(t, err)
	_, err = r.Execute(context.Background(), "  ")
	require.NoError(t, err)

	entries, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Id = x => x;", entries[0].Text)
}

func TestRunPlain(t *testing.T) {
	in := strings.NewReader("Id = x => x;\nId\n:quit\nK = x => x;\n")
	var out bytes.Buffer
	r := newRepl(t)
	require.NoError(t, RunPlain(context.Background(), r, in, &out, false))

	text := out.String()
	require.Contains(t, text, "Id defined\n")
	require.Contains(t, text, "x => x\n")
	require.NotContains(t, text, "K defined")
}

func TestReplModelHistory(t *testing.T) {
	m := NewReplModel(context.Background(), newRepl(t)).(*replModel)
	m.history = []string{"A = x => x;", "A"}
	m.histPos = len(m.history)
	m.input.SetValue("dra")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "A", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "A = x => x;", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "A = x => x;", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "dra", m.input.Value())
}

func TestReplModelQuit(t *testing.T) {
	m := NewReplModel(context.Background(), newRepl(t))
	_, cmd := m.Update(resultMsg{out: Output{Quit: true}})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgressModel(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.lc", "b.lc"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.lc", Status: driver.StatusWorking})
	require.Equal(t, "checking", m.items[0].status)
	m.Update(eventMsg{File: "a.lc", Status: driver.StatusDone})
	m.Update(eventMsg{File: "a.lc", Status: driver.StatusDone})
	m.Update(eventMsg{File: "b.lc", Status: driver.StatusError})
	m.Update(eventMsg{File: "zzz.lc", Status: driver.StatusDone})
	require.Equal(t, 2, m.finished)
	require.Equal(t, "error", m.items[1].status)

	_, cmd := m.Update(doneMsg{})
	require.True(t, m.done)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Contains(t, m.View(), "done: check (2/2)")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "a...", truncate("a-long-path.lc", 7))
	require.Equal(t, "ab", truncate("abcdef", 2))
}
