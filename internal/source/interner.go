package source

// Interner hands out one canonical string per distinct text so that tokens with
// identical text share a single allocation. An Interner belongs to one lexer;
// it is not safe for concurrent use.
type Interner struct {
	index map[string]string
}

func NewInterner() *Interner {
	return &Interner{index: make(map[string]string)}
}

// Intern returns the canonical copy of b, creating it on first sight.
func (i *Interner) Intern(b []byte) string {
	// string(b) в ключе map не аллоцирует
	if s, ok := i.index[string(b)]; ok {
		return s
	}
	s := string(b)
	i.index[s] = s
	return s
}

// InternString is Intern for text that is already a string.
func (i *Interner) InternString(s string) string {
	if c, ok := i.index[s]; ok {
		return c
	}
	i.index[s] = s
	return s
}

// Len возвращает количество различных строк.
func (i *Interner) Len() int {
	return len(i.index)
}
