package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Fit returns how many columns and rows of a square grid fit on the current
// terminal, keeping reserved lines free for text below the map.
func Fit(gridSize, reserved int) (cols, rows int) {
	width, height := GetSize()
	return FitIn(width, height, gridSize, reserved)
}

// FitIn is Fit for an explicit terminal size
func FitIn(width, height, gridSize, reserved int) (cols, rows int) {
	cols = min(gridSize, width)
	rows = min(gridSize, height-reserved)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}
