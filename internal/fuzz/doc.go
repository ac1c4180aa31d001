// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> extraction -> elaboration -> normalization).
// They guard against panics, hangs and broken tree invariants on arbitrary
// input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
