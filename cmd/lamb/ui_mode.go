package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides whether a Bubble Tea program may take over the
// terminal; auto needs both stdin and stdout to be terminals.
func shouldUseTUI(mode uiMode, in, out any) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	fin, ok1 := in.(*os.File)
	fout, ok2 := out.(*os.File)
	return ok1 && ok2 && isTerminal(fin) && isTerminal(fout)
}
