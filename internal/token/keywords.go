package token

// Keyword is a contextual keyword. Keywords are lexed as Name and only
// mean something at the start of a use declaration.
type Keyword string

const (
	KwUse    Keyword = "use"
	KwImport Keyword = "import"
	KwFrom   Keyword = "from"
)

var keywords = map[string]Keyword{
	"use":    KwUse,
	"import": KwImport,
	"from":   KwFrom,
}

// LookupKeyword возвращает ключевое слово и bool, если текст им является.
func LookupKeyword(text string) (Keyword, bool) {
	kw, ok := keywords[text]
	return kw, ok
}

// StartsUse reports whether t opens a use declaration.
func (t Token) StartsUse() bool {
	return t.Is(KwUse) || t.Is(KwImport)
}
