package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// EOF marks the end of the source input.
	EOF Kind = iota
	// Unknown groups a run of bytes that start no other token.
	Unknown

	// Whitespace is a run of space, tab, CR and LF.
	Whitespace
	// Comment runs from '#' to the end of the line, newline excluded.
	Comment

	// Name is a lower-case identifier: a variable.
	Name
	// Alias is an upper-case identifier: a definition name.
	Alias
	// String is a '"'-delimited literal on one line.
	String
	// UnterminatedString is a string literal cut short by a newline or EOF.
	UnterminatedString

	LParen // (
	RParen // )
	LBrace // {
	RBrace // }
	Comma  // ,
	Semi   // ;
	Equals // =
	Arrow  // =>
)

var kindNames = [...]string{
	EOF:                "EOF",
	Unknown:            "Unknown",
	Whitespace:         "Whitespace",
	Comment:            "Comment",
	Name:               "Name",
	Alias:              "Alias",
	String:             "String",
	UnterminatedString: "UnterminatedString",
	LParen:             "LParen",
	RParen:             "RParen",
	LBrace:             "LBrace",
	RBrace:             "RBrace",
	Comma:              "Comma",
	Semi:               "Semi",
	Equals:             "Equals",
	Arrow:              "Arrow",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether tokens of this kind carry no syntactic meaning.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// StartsTerm reports whether a token of this kind can begin a term,
// counting the tokens a recovering parser treats as the start of an
// abstraction with a missing part (',' and '=>').
func (k Kind) StartsTerm() bool {
	switch k {
	case Name, Alias, LParen, Comma, Arrow:
		return true
	default:
		return false
	}
}
