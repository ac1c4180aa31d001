package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lamb/internal/cst"
	"lamb/internal/diag"
	"lamb/internal/parser"
	"lamb/internal/source"
)

type parseFunc func(*source.File, parser.Options) parser.Result

func parse(t *testing.T, fn parseFunc, input string) (*cst.Inner, *source.File, []string) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lc", []byte(input)))
	bag := diag.NewBag(0)
	res := fn(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.Tree, file, diagnosticsSummary(bag)
}

func diagnosticsSummary(bag *diag.Bag) []string {
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("%s %s @%d..%d", d.Code.ID(), d.Message, d.Primary.Start, d.Primary.End))
	}
	return lines
}

// kindTree renders kinds and leaf texts only, without spans.
func kindTree(n cst.Node) string {
	var sb strings.Builder
	var walk func(cst.Node, int)
	walk = func(n cst.Node, level int) {
		sb.WriteString(strings.Repeat("  ", level))
		switch n := n.(type) {
		case *cst.Leaf:
			fmt.Fprintf(&sb, "%q\n", n.Token.Text)
		case *cst.Inner:
			sb.WriteString(n.Kind.String() + "\n")
			for _, c := range n.Children {
				walk(c, level+1)
			}
		}
	}
	walk(n, 0)
	return sb.String()
}

func TestParsesValidReplDef(t *testing.T) {
	tree, _, diags := parse(t, parser.ParseReplInput, "Id = x => x")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expected := `ReplInput
  Def
    Name
      "Id"
    " "
    "="
    " "
    Tms
      Abs
        AbsVars
          Name
            "x"
        " "
        "=>"
        " "
        Tms
          Var
            "x"
`
	if diff := cmp.Diff(expected, kindTree(tree)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParenthesizedAbstraction(t *testing.T) {
	tree, _, diags := parse(t, parser.ParseReplInput, "(x => x) y")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expected := `ReplInput
  Tms
    "("
    Tms
      Abs
        AbsVars
          Name
            "x"
        " "
        "=>"
        " "
        Tms
          Var
            "x"
    ")"
    " "
    Var
      "y"
`
	if diff := cmp.Diff(expected, kindTree(tree)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestUseDeclaration(t *testing.T) {
	tree, _, diags := parse(t, parser.ParseModule, `use {A, B} from "m";`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expected := `Module
  Use
    "use"
    " "
    UseAliases
      "{"
      Name
        "A"
      ","
      " "
      Name
        "B"
      "}"
    " "
    "from"
    " "
    UseFilepath
      "m"
  ";"
`
	if diff := cmp.Diff(expected, kindTree(tree)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingPlaceholders(t *testing.T) {
	tree, _, _ := parse(t, parser.ParseModule, "= ;")
	expected := `Module
  Def
    Missing
    "="
    " "
    Tms
  ";"
`
	if diff := cmp.Diff(expected, kindTree(tree)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name  string
		fn    parseFunc
		input string
		want  []string
	}{
		{"module ok", parser.ParseModule, "Id = x => x;\nK = (a, b) => a;\n", nil},
		{"empty module", parser.ParseModule, "  # nothing\n", nil},
		{"missing semicolon", parser.ParseModule, "Id = x => x", []string{"SYN2005 missing a ';' @11..11"}},
		{"extraneous semicolon", parser.ParseModule, ";", []string{"SYN2004 extraneous ';' @0..1"}},
		{"extraneous run", parser.ParseModule, "Id = x => x y )) ;", []string{"SYN2002 extraneous input @14..17"}},
		{"extraneous run at eof", parser.ParseModule, "Id = x )", []string{"SYN2002 extraneous input @7..8"}},
		{"not a declaration", parser.ParseModule, "x y;", []string{"SYN2006 expected definition or use declaration here @0..3"}},
		{"name in use list", parser.ParseModule, `use {A, b} from "m";`, []string{"SYN2007 expected an alias here, not a name @8..9"}},
		{
			"missing comma and from", parser.ParseModule, `use {A B} "m";`,
			[]string{"SYN2001 expected a ',' before this @7..8", "SYN2001 expected 'from' before this @10..13"},
		},
		{
			"missing use keyword", parser.ParseModule, `{A} from "m";`,
			[]string{"SYN2001 expected 'use' before this @0..1"},
		},
		{
			"missing brace", parser.ParseModule, `import A} from "m";`,
			[]string{"SYN2001 expected a '{' before this @7..8"},
		},
		{
			"unterminated filepath", parser.ParseModule, "import {} from \"m\n",
			[]string{"LEX1002 unterminated filepath @15..17", "SYN2005 missing a ';' @18..18"},
		},
		{
			"missing filepath", parser.ParseModule, "use {} from ;",
			[]string{"SYN2001 expected a filepath before this @12..13"},
		},
		{"extraneous input", parser.ParseReplInput, "x y ) z", []string{"SYN2002 extraneous input @4..7"}},
		{"unmatched paren", parser.ParseReplInput, "(x", []string{"SYN2003 unmatched '(' @0..1"}},
		{"missing term", parser.ParseReplInput, "A = ", []string{"SYN2001 expected a term before this @4..4"}},
		{"missing alias", parser.ParseReplInput, "= x", []string{"SYN2001 expected an alias name before this @0..1"}},
		{"var as def name", parser.ParseReplInput, "a = x", []string{"SYN2007 expected an alias, not a var @0..1"}},
		{"arrow without vars", parser.ParseReplInput, "=> x", []string{"SYN2001 expected abstraction var(s) enclosed in '(..)' before this @0..2"}},
		{"missing var comma", parser.ParseReplInput, "(x y) => x", []string{"SYN2001 expected a ',' before this @3..4"}},
		{"alias as var", parser.ParseReplInput, "(X) => X", []string{"SYN2007 expected a var here, not an alias @1..2"}},
		{"double comma", parser.ParseReplInput, "(x,,y) => x", []string{"SYN2004 extraneous ',' @3..4"}},
		{"missing rparen", parser.ParseReplInput, "(x, y => x", []string{"SYN2001 expected a ')' before this @6..8"}},
		{"missing arrow body", parser.ParseReplInput, "(x, y)", []string{"SYN2001 expected an '=>', followed by a term before this @6..6"}},
		{"missing open paren", parser.ParseReplInput, ", y) => y", []string{"SYN2001 expected a '(' before this @0..1", "SYN2004 extraneous ',' @0..1"}},
		{"unknown token", parser.ParseReplInput, "x %% y", []string{"LEX1001 unknown token @2..4"}},
		{"empty input", parser.ParseReplInput, "", []string{"SYN2006 expected a definition or term before this @0..0"}},
		{"zero vars is syntax", parser.ParseReplInput, "() => x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, diags := parse(t, tt.fn, tt.input)
			if diff := cmp.Diff(tt.want, diags); diff != "" {
				t.Errorf("diagnostics mismatch for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"Id = x => x;\n",
		"# header\nuse { A , B } from \"./lib\" ;\nK = (a,b)=>a;\r\nS=(x,y,z)=>x z(y z);",
		"Id = x => x y )) ;",
		"τ = λx.x;",
		"\"unterminated\n= =>(,,)) {{ }} ;;",
		"",
	}
	for _, input := range inputs {
		for _, fn := range []parseFunc{parser.ParseModule, parser.ParseReplInput} {
			tree, file, _ := parse(t, fn, input)
			if got := cst.Reconstruct(tree, file); got != input {
				t.Errorf("round trip of %q gave %q", input, got)
			}
		}
	}
}

func TestMaxErrorsCapsReportsOnly(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lc", []byte("x %% %% %% y")))
	bag := diag.NewBag(0)
	res := parser.ParseReplInput(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 1})
	if bag.Len() != 1 {
		t.Errorf("expected 1 reported diagnostic, got %d", bag.Len())
	}
	if res.Errors != 3 {
		t.Errorf("expected 3 counted errors, got %d", res.Errors)
	}
	if got := cst.Reconstruct(res.Tree, file); got != "x %% %% %% y" {
		t.Errorf("parse stopped early: %q", got)
	}
}

func TestNilReporter(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lc", []byte(")))")))
	res := parser.ParseModule(file, parser.Options{})
	if res.Errors == 0 {
		t.Error("errors must be counted without a reporter")
	}
}
