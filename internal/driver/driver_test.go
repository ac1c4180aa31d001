package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"lamb/internal/core"
	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/driver"
	"lamb/internal/source"
	"lamb/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func codes(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code.ID())
	}
	slices.Sort(out)
	return out
}

const church = `# Church numerals
Zero = (s, z) => z;
Suc = n => (s, z) => s (n s z);
Plus = (m, n) => m Suc n;
Two = Suc (Suc Zero);
Four = Plus Two Two;
`

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.lc", "A = \"x\n$")
	res, err := driver.Tokenize(path, 0)
	require.NoError(t, err)

	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.Alias, token.Whitespace, token.Equals, token.Whitespace,
		token.UnterminatedString, token.Whitespace, token.Unknown, token.EOF,
	}, kinds)
	require.Equal(t, []string{"LEX1001", "LEX1002"}, codes(res.Bag.Items()))
}

func TestCheckReportsEveryPhase(t *testing.T) {
	path := writeFile(t, t.TempDir(), "m.lc", "use {K} from \"./k\";\nA = x => y;\nB = x => x $ x;\n")
	res, err := driver.Check(context.Background(), path, 0)
	require.NoError(t, err)

	require.Equal(t, []string{"LEX1001", "SEM3001", "SEM3005"}, codes(res.Bag.Items()))
	require.Len(t, res.Elab.Defs, 2)
	require.NotNil(t, res.Timing)
	require.NotEmpty(t, res.Timing.Phases)
}

func TestParseKeepsFileBytes(t *testing.T) {
	raw := "\ufeffId = x => x;\r\nE = \u00e9;\r\n"
	path := writeFile(t, t.TempDir(), "crlf.lc", raw)
	res, err := driver.Parse(context.Background(), path, 0)
	require.NoError(t, err)

	disk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(disk), cst.Reconstruct(res.Tree, res.File))

	i := slices.IndexFunc(res.Bag.Items(), func(d diag.Diagnostic) bool { return d.Code.ID() == "LEX1001" })
	require.GreaterOrEqual(t, i, 0)
	start, _ := res.FileSet.Resolve(res.Bag.Items()[i].Primary)
	require.Equal(t, source.LineCol{Line: 2, Col: 5}, start)
}

func TestCheckMissingFile(t *testing.T) {
	_, err := driver.Check(context.Background(), filepath.Join(t.TempDir(), "nope.lc"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.lc", "B = x => x;\n")
	writeFile(t, dir, "a.lc", "A = y;\n")
	writeFile(t, dir, "sub/c.lc", church)
	writeFile(t, dir, "notes.txt", "not lamb")

	results, err := driver.CheckDir(context.Background(), dir, 0, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var names []string
	for _, r := range results {
		rel, err := filepath.Rel(dir, r.Path)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
		require.NotNil(t, r.Result)
	}
	require.Equal(t, []string{"a.lc", "b.lc", "sub/c.lc"}, names)
	require.Equal(t, []string{"SEM3001"}, codes(results[0].Bag.Items()))
	require.Zero(t, results[1].Bag.Len())
	require.Zero(t, results[2].Bag.Len())
}

func TestCheckFilesProgress(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lc", "Id = x => x;\n")
	bad := writeFile(t, dir, "bad.lc", "Bad = y;\n")

	events := make(chan driver.Event, 16)
	_, err := driver.CheckFiles(context.Background(), []string{good, bad}, 0, 1, driver.ChannelSink{Ch: events})
	require.NoError(t, err)
	close(events)

	final := map[string]driver.Status{}
	queued := 0
	for ev := range events {
		if ev.Status == driver.StatusQueued {
			queued++
			continue
		}
		final[ev.File] = ev.Status
	}
	require.Equal(t, 2, queued)
	require.Equal(t, map[string]driver.Status{good: driver.StatusDone, bad: driver.StatusError}, final)
}

func TestEvalWithCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "church.lc", church)
	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	opts := driver.EvalOptions{MaxSteps: 10_000, Cache: cache, Defs: []string{"Four"}}

	first, err := driver.Eval(context.Background(), path, opts)
	require.NoError(t, err)
	require.Len(t, first.Defs, 1)
	four := first.Defs[0]
	require.NoError(t, four.Err)
	require.False(t, four.Cached)
	require.Equal(t, "s => z => (s (s (s (s z))))", four.Normal.String())

	second, err := driver.Eval(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, second.Defs[0].Cached)
	require.True(t, core.Equal(four.Normal, second.Defs[0].Normal))
	require.Equal(t, four.Steps, second.Defs[0].Steps)

	require.NoError(t, cache.DropAll())
	third, err := driver.Eval(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, third.Defs[0].Cached)
}

func TestEvalStepLimit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "omega.lc", "Omega = (x => x x) (x => x x);\nId = x => x;\n")
	res, err := driver.Eval(context.Background(), path, driver.EvalOptions{MaxSteps: 500})
	require.NoError(t, err)

	require.Equal(t, []string{"EVL4001"}, codes(res.Bag.Items()))
	require.Len(t, res.Defs, 2)
	require.Nil(t, res.Defs[0].Normal)
	require.Equal(t, "x => x", res.Defs[1].Normal.String())
}

func TestEvalUnknownDefinition(t *testing.T) {
	path := writeFile(t, t.TempDir(), "m.lc", "Id = x => x;\n")
	_, err := driver.Eval(context.Background(), path, driver.EvalOptions{Defs: []string{"Nope"}})
	require.ErrorContains(t, err, `no definition named "Nope"`)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	s := driver.NewSession(driver.SessionOptions{MaxSteps: 1000})

	reply, err := s.Submit(ctx, "I = x => x")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyDefined, reply.Kind)
	require.Equal(t, "I", reply.Name)
	require.False(t, reply.Redefined)

	reply, err = s.Submit(ctx, "K = (a, b) => a")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyDefined, reply.Kind)

	reply, err = s.Submit(ctx, "K I I")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyNormal, reply.Kind)
	require.Equal(t, "x => x", reply.Normal.String())
	require.Equal(t, []string{"I", "K"}, reply.Deps)

	reply, err = s.Submit(ctx, "Kk")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyFailed, reply.Kind)
	require.Equal(t, []string{"SEM3004"}, codes(reply.Diagnostics))

	reply, err = s.Submit(ctx, "   # just a comment")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyEmpty, reply.Kind)

	reply, err = s.Submit(ctx, "(x => x x) (x => x x)")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyFailed, reply.Kind)
	require.Equal(t, []string{"EVL4001"}, codes(reply.Diagnostics))

	reply, err = s.Submit(ctx, "I = y => y")
	require.NoError(t, err)
	require.True(t, reply.Redefined)

	require.Equal(t, []string{"I", "K"}, s.Aliases())
}

func TestSessionLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "church.lc", church)
	s := driver.NewSession(driver.SessionOptions{MaxSteps: 10_000})

	res, err := s.Load(context.Background(), path)
	require.NoError(t, err)
	require.Zero(t, res.Bag.Len())

	reply, err := s.Submit(context.Background(), "Plus Two Zero")
	require.NoError(t, err)
	require.Equal(t, driver.ReplyNormal, reply.Kind)
	require.Equal(t, "s => z => (s (s z))", reply.Normal.String())
}
