package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// lamb runs one command line with colors off and no config lookup outside
// a temp dir.
func lamb(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg := writeFile(t, t.TempDir(), configFileName, "")
	args = append([]string{"--color", "off", "--config", cfg}, args...)
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

const church = `Zero = (s, z) => z;
Suc = n => (s, z) => s (n s z);
Plus = (m, n) => (s, z) => m s (n s z);
Two = Suc (Suc Zero);
Four = Plus Two Two;
`

func TestTokenizeJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "id.lc", "Id = x => x;")
	code, out, _ := lamb(t, "", "tokenize", "--format", "json", path)
	require.Equal(t, 0, code)

	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &toks))
	require.Equal(t, "Alias", toks[0].Kind)
	require.Equal(t, "Id", toks[0].Text)
	require.Equal(t, "EOF", toks[len(toks)-1].Kind)
}

func TestParseFormats(t *testing.T) {
	path := writeFile(t, t.TempDir(), "id.lc", "Id = x => x;")
	code, out, _ := lamb(t, "", "parse", path)
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(out, "Module@0..12\n"), out)

	code, out, _ = lamb(t, "", "parse", "--format", "ast", path)
	require.Equal(t, 0, code)
	require.Contains(t, out, `"decls"`)

	code, _, stderr := lamb(t, "", "parse", "--format", "yaml", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown format")
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lc", church)
	bad := writeFile(t, dir, "bad.lc", "A = x => y;\n")

	code, out, _ := lamb(t, "", "check", good)
	require.Equal(t, 0, code)
	require.Empty(t, out)

	code, out, stderr := lamb(t, "", "check", bad)
	require.Equal(t, 1, code)
	require.Contains(t, out, "error SEM3001: unbound variable 'y'")
	require.Contains(t, out, "1 error, 0 warnings")
	require.Empty(t, stderr)
}

func TestCheckDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lc", "A = y;\n")
	writeFile(t, dir, "b.lc", church)

	code, out, _ := lamb(t, "", "check", "--ui", "off", "--format", "json", dir)
	require.Equal(t, 1, code)

	var files []fileDiagnostics
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 2)
	require.Equal(t, 1, files[0].Diag.Count)
	require.Equal(t, "SEM3001", files[0].Diag.Diagnostics[0].Code)
	require.Zero(t, files[1].Diag.Count)
}

func TestCheckDirPretty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.lc", church)
	code, out, _ := lamb(t, "", "check", "--ui", "off", dir)
	require.Equal(t, 0, code)
	require.Equal(t, "checked 1 files\n", out)
}

func TestEval(t *testing.T) {
	path := writeFile(t, t.TempDir(), "church.lc", church)
	code, out, stderr := lamb(t, "", "eval", "--no-cache", "--def", "Four", path)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "Four = s => z => (s (s (s (s z))))\n", out)

	code, _, stderr = lamb(t, "", "eval", "--no-cache", "--def", "Five", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, `no definition named "Five"`)
}

func TestConfigStepLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "omega.lc", "Omega = (x => x x) (x => x x);\n")
	cfg := writeFile(t, dir, configFileName, "[eval]\nmax_steps = 100\ncache = false\n")

	var out, errOut bytes.Buffer
	code := run([]string{"--color", "off", "--config", cfg, "eval", path}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 1, code)
	require.Contains(t, errOut.String(), "normalizing 'Omega' took more than 100 steps")

	// флаг сильнее файла
	out.Reset()
	errOut.Reset()
	code = run([]string{"--color", "off", "--config", cfg, "eval", "--max-steps", "50", path}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 1, code)
	require.Contains(t, errOut.String(), "more than 50 steps")
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, configFileName, "[eval]\nmax_stepz = 1\n")
	_, err := loadConfig(cfg)
	require.ErrorContains(t, err, "unknown keys: eval.max_stepz")

	cfg = writeFile(t, dir, "color.toml", "[diagnostics]\ncolor = \"sometimes\"\n")
	_, err = loadConfig(cfg)
	require.ErrorContains(t, err, "diagnostics.color")
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, configFileName, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := findConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	wantAbs, err := filepath.Abs(want)
	require.NoError(t, err)
	require.Equal(t, wantAbs, got)
}

func TestReplPiped(t *testing.T) {
	dir := t.TempDir()
	lib := writeFile(t, dir, "k.lc", "K = (x, y) => x;\n")
	code, out, stderr := lamb(t, "Id = x => x;\nK Id\n:aliases\n", "repl", "--ui", "off", "--no-cache", lib)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, out, "loaded 1 of 1 definitions")
	require.Contains(t, out, "Id defined\n")
	require.Contains(t, out, "y => x => x\n")
	require.Contains(t, out, "Id K\n")
}

func TestVersionJSON(t *testing.T) {
	code, out, _ := lamb(t, "", "version", "--format", "json")
	require.Equal(t, 0, code)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "lamb", payload.Tool)
	require.NotEmpty(t, payload.Version)
}

func TestReadModes(t *testing.T) {
	_, err := readColorMode("sometimes")
	require.Error(t, err)
	m, err := readUIMode(" OFF ")
	require.NoError(t, err)
	require.Equal(t, uiModeOff, m)
}
