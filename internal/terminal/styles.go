// Package terminal is the command-line front end: it renders scored guesses
// and the keyboard with lipgloss and runs the interactive play loop.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
)

var (
	// CorrectColor marks letters in the right place.
	CorrectColor = lipgloss.Color("#538D4E") // Green
	// PresentColor marks letters elsewhere in the word.
	PresentColor = lipgloss.Color("#B59F3B") // Yellow
	// AbsentColor marks letters not in the word.
	AbsentColor = lipgloss.Color("#3A3A3C") // Dark gray
	// UnknownColor is for keys not guessed yet.
	UnknownColor = lipgloss.Color("#818384") // Light gray

	tileStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// TitleStyle is used for the banner.
	TitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	// ErrorStyle formats rejected input.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	// SubtleStyle formats prompts and counters.
	SubtleStyle = lipgloss.NewStyle().Foreground(UnknownColor)
)

// keyboardRows is the QWERTY layout drawn under the board.
var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

func colorFor(p letters.Position) lipgloss.Color {
	switch p {
	case letters.Correct:
		return CorrectColor
	case letters.WrongPosition:
		return PresentColor
	case letters.NotInWord:
		return AbsentColor
	}
	return UnknownColor
}

// RenderResult draws one guess as a row of colored tiles.
func RenderResult(r game.Result) string {
	tiles := make([]string, len(r))
	for i, l := range r {
		tiles[i] = tileStyle.Background(colorFor(l.Position)).Render(string(l.Char))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// RenderKeyboard draws the best-seen hint for every key.
func RenderKeyboard(kb game.Keyboard) string {
	rows := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		keys := make([]string, len(row))
		for j := 0; j < len(row); j++ {
			c := row[j]
			keys[j] = keyStyle.Background(colorFor(kb.Get(c))).Render(" " + string(c) + " ")
		}
		rows[i] = strings.Repeat(" ", i) + strings.Join(keys, " ")
	}
	return strings.Join(rows, "\n")
}
