package source

import (
	"bytes"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// BOM is the UTF-8 byte order mark. Files keep it; the lexer treats it as
// leading whitespace.
const BOM = "\xEF\xBB\xBF"

// HasBOM reports whether content starts with a byte order mark.
func HasBOM(content []byte) bool {
	return bytes.HasPrefix(content, []byte(BOM))
}

func hasCRLF(content []byte) bool {
	return bytes.Contains(content, []byte("\r\n"))
}

// NormalizeText returns s in NFC, so composed and decomposed spellings of
// the same text compare equal. Source bytes are never rewritten; only
// values derived from them, such as use targets, are normalised.
func NormalizeText(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // bounded by checked content length
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// hi — индекс последнего перевода строки перед off (или -1)
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[hi] + 1
	return LineCol{Line: uint32(hi + 2), Col: off - startOff + 1} //nolint:gosec // hi < len(lineIdx)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
