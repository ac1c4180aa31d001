package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownToken       Code = 1001
	LexUnterminatedString Code = 1002

	// Синтаксические
	SynInfo                Code = 2000
	SynExpectedToken       Code = 2001
	SynExtraneousInput     Code = 2002
	SynUnmatchedParen      Code = 2003
	SynExtraneousSeparator Code = 2004
	SynMissingSemicolon    Code = 2005
	SynExpectedDecl        Code = 2006
	SynBadName             Code = 2007

	// Семантические
	SemInfo            Code = 3000
	SemUnboundVariable Code = 3001
	SemAbsWithoutVars  Code = 3002
	SemDuplicateDef    Code = 3003
	SemUnboundAlias    Code = 3004
	SemImportNotLoaded Code = 3005
	SemCyclicDef       Code = 3006

	// Вычисление
	EvalInfo      Code = 4000
	EvalStepLimit Code = 4001

	// Ввод-вывод хоста
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownToken:        "Unknown token",
	LexUnterminatedString:  "Unterminated string",
	SynInfo:                "Syntax information",
	SynExpectedToken:       "Expected token",
	SynExtraneousInput:     "Extraneous input",
	SynUnmatchedParen:      "Unmatched parenthesis",
	SynExtraneousSeparator: "Extraneous separator",
	SynMissingSemicolon:    "Missing semicolon",
	SynExpectedDecl:        "Expected declaration",
	SynBadName:             "Misplaced name",
	SemInfo:                "Semantic information",
	SemUnboundVariable:     "Unbound variable",
	SemAbsWithoutVars:      "Abstraction without vars",
	SemDuplicateDef:        "Duplicate definition",
	SemUnboundAlias:        "Unbound alias",
	SemImportNotLoaded:     "Import not loaded",
	SemCyclicDef:           "Cyclic definition",
	EvalInfo:               "Evaluation information",
	EvalStepLimit:          "Step limit exceeded",
	IOInfo:                 "I/O information",
	IOLoadFileError:        "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("EVL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
