package lexer

// ===== Классификаторы =====

func isNameStart(b byte) bool  { return b >= 'a' && b <= 'z' }
func isAliasStart(b byte) bool { return b >= 'A' && b <= 'Z' }

func isIdentContinue(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '*' || b == '+' || b == '\'' || b == '?':
		return true
	default:
		return false
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func notLineEnd(b byte) bool { return b != '\n' && b != '\r' }

// isUnknown is the complement of every other token start, so an Unknown
// run always ends exactly where a recognisable token begins. Bytes of a
// multi-byte rune are all >= 0x80 and never split a run.
func isUnknown(b byte) bool {
	switch b {
	case '(', ')', '{', '}', ',', ';', '=', '#', '"':
		return false
	}
	return !isNameStart(b) && !isAliasStart(b) && !isWhitespace(b)
}
