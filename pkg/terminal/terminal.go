// Package terminal answers the few questions lytelode asks about its
// output: is it a terminal, how wide is it, and should it be colored.
package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultCols is the width assumed when nothing better is known.
const DefaultCols = 80

// Interactive reports whether f is a terminal, including Cygwin and MSYS
// pseudo terminals.
func Interactive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Cols returns the width of the terminal on fd. It falls back to COLUMNS
// and then to DefaultCols when fd is not a terminal.
func Cols(fd uintptr) int {
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return envInt("COLUMNS", DefaultCols)
}

// ColorDisabled reports whether colored output is off, either by flag or
// through the NO_COLOR convention (any non-empty value).
func ColorDisabled(flag bool) bool {
	return flag || os.Getenv("NO_COLOR") != ""
}

// envInt reads a positive integer from the named environment variable,
// returning fallback if it is unset or invalid.
func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
