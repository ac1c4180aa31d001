package cst

// Kind tags an inner node of the syntax tree.
type Kind uint8

const (
	Module Kind = iota
	ReplInput
	Def
	Use
	UseAliases
	UseFilepath
	Tms // a term, or several juxtaposed terms forming an application
	Var
	Alias
	Abs
	AbsVars
	Name
	BadName // a Name where an Alias belongs, or the other way round
	Missing // placeholder for a required child that is not there
)

var kindNames = [...]string{
	Module:      "Module",
	ReplInput:   "ReplInput",
	Def:         "Def",
	Use:         "Use",
	UseAliases:  "UseAliases",
	UseFilepath: "UseFilepath",
	Tms:         "Tms",
	Var:         "Var",
	Alias:       "Alias",
	Abs:         "Abs",
	AbsVars:     "AbsVars",
	Name:        "Name",
	BadName:     "BadName",
	Missing:     "Missing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
