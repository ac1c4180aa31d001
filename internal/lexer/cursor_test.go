package lexer

import (
	"testing"

	"lamb/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lc", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Errorf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Errorf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Error("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Expected zero bytes at EOF")
	}
}

func TestMarkSpanFrom(t *testing.T) {
	cursor := NewCursor(createFile("hello world"))
	cursor.Bump()
	m := cursor.Mark()
	n := cursor.EatWhile(func(b byte) bool { return b != ' ' })
	if n != 4 {
		t.Errorf("EatWhile ate %d bytes, want 4", n)
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 1 || sp.End != 5 {
		t.Errorf("SpanFrom = %v", sp)
	}
	if cursor.Eat('x') || !cursor.Eat(' ') {
		t.Error("Eat matched the wrong byte")
	}
	if cursor.Off != 6 {
		t.Errorf("offset = %d, want 6", cursor.Off)
	}
}

func TestIsUnknownIsComplement(t *testing.T) {
	starts := []byte("(){},;=#\"aZ \t\r\n")
	for _, b := range starts {
		if isUnknown(b) {
			t.Errorf("%q starts a token and must not be unknown", b)
		}
	}
	for _, b := range []byte("*+-^%<>:\\0?'@\x80\xff") {
		if !isUnknown(b) {
			t.Errorf("%q should be unknown", b)
		}
	}
}
