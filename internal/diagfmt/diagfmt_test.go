package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lamb/internal/diag"
	"lamb/internal/source"
	"lamb/internal/token"
)

func unboundFixture() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lc", []byte("A = x => y;\n"))
	bag := diag.NewBag(0)
	d := diag.NewError(diag.SemUnboundVariable, source.Span{File: id, Start: 9, End: 10}, "unbound variable 'y'").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "did you mean 'x'?")
	bag.Add(d)
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := unboundFixture()
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}))

	want := "test.lc:1:10: error SEM3001: unbound variable 'y'\n" +
		" 1 | A = x => y;\n" +
		"   |          ^\n" +
		"   = note: test.lc:1:5: did you mean 'x'?\n"
	require.Equal(t, want, buf.String())
}

func TestPrettyHidesNotes(t *testing.T) {
	bag, fs := unboundFixture()
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	require.NotContains(t, buf.String(), "note:")
}

func TestPrettyColor(t *testing.T) {
	bag, fs := unboundFixture()
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{Color: true}))
	require.Contains(t, buf.String(), "\x1b[")
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// "名" занимает три байта и две колонки.
	src := "\t名 = x;\n"
	id := fs.AddVirtual("wide.lc", []byte(src))
	bag := diag.NewBag(0)
	start := uint32(strings.Index(src, "x"))
	bag.Add(diag.NewError(diag.SemUnboundVariable, source.Span{File: id, Start: start, End: start + 1}, "unbound variable 'x'"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{TabWidth: 2}))
	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, " 1 |   名 = x;", lines[1])
	require.Equal(t, "   |"+strings.Repeat(" ", 8)+"^", lines[2])
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read missing.lc"))
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, nil, PrettyOpts{}))
	require.Equal(t, "error IO5001: cannot read missing.lc\n", buf.String())
}

func TestSummary(t *testing.T) {
	bag, _ := unboundFixture()
	bag.Add(diag.New(diag.SevWarning, diag.SemImportNotLoaded, source.Span{}, "w1"))
	bag.Add(diag.New(diag.SevWarning, diag.SemImportNotLoaded, source.Span{}, "w2"))

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, bag))
	require.Equal(t, "1 error, 2 warnings\n", buf.String())

	buf.Reset()
	require.NoError(t, Summary(&buf, diag.NewBag(0)))
	require.Empty(t, buf.String())
}

func TestJSON(t *testing.T) {
	bag, fs := unboundFixture()
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	require.Len(t, out.Diagnostics, 1)

	d := out.Diagnostics[0]
	require.Equal(t, "ERROR", d.Severity)
	require.Equal(t, "SEM3001", d.Code)
	require.Equal(t, LocationJSON{
		File: "test.lc", StartByte: 9, EndByte: 10,
		StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 11,
	}, d.Location)
	require.Len(t, d.Notes, 1)
	require.Equal(t, "did you mean 'x'?", d.Notes[0].Message)
}

func TestJSONMax(t *testing.T) {
	bag, fs := unboundFixture()
	bag.Add(diag.NewError(diag.SemUnboundAlias, source.Span{}, "unbound alias 'B'"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	require.Equal(t, 2, out.Count)
	require.Len(t, out.Diagnostics, 1)
	require.Empty(t, out.Diagnostics[0].Notes)
	require.Zero(t, out.Diagnostics[0].Location.StartLine)
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.lc", []byte("Id"))
	toks := []token.Token{
		{Kind: token.Alias, Span: source.Span{File: id, Start: 0, End: 2}, Text: "Id"},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 2, End: 2}},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 2, End: 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, toks, fs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"Id" at 1:1-1:3`)

	buf.Reset()
	require.NoError(t, FormatTokensJSON(&buf, toks))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	require.Equal(t, "Id", out[0].Text)
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"": PathModeAuto, "auto": PathModeAuto, "absolute": PathModeAbsolute,
		"relative": PathModeRelative, "basename": PathModeBasename,
	} {
		got, ok := ParsePathMode(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}
	_, ok := ParsePathMode("full")
	require.False(t, ok)
}
