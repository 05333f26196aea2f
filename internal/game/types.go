// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Result: the five scored letters of one guess.
//   - Keyboard: best-seen Position per letter A–Z.
//   - Game: a single session (secret word + keyboard).

package game

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

// MaxAttempts is the usual number of guesses a caller allows per game.
// The engine itself does not count attempts.
const MaxAttempts = 6

// Result is the scored form of a guess, index-aligned with the guess text.
type Result [words.WordLength]letters.Letter

// Word returns the guessed word the result was computed for.
func (r Result) Word() string {
	b := make([]byte, len(r))
	for i, l := range r {
		b[i] = l.Char
	}
	return string(b)
}

// Positions returns just the classifications, in order.
func (r Result) Positions() [words.WordLength]letters.Position {
	var out [words.WordLength]letters.Position
	for i, l := range r {
		out[i] = l.Position
	}
	return out
}

// Won reports whether every letter of r is Correct.
func Won(r Result) bool {
	for _, l := range r {
		if l.Position != letters.Correct {
			return false
		}
	}
	return true
}

// Keyboard holds the best Position seen so far for each letter A–Z.
// The zero value has every letter Unknown.
type Keyboard [26]letters.Position

// Get returns the recorded Position for c (A–Z).
// Any other byte is a programming error and panics.
func (k Keyboard) Get(c byte) letters.Position {
	return k[keyIndex(c)]
}

// Map returns a snapshot keyed by the letter as a one-character string.
func (k Keyboard) Map() map[string]letters.Position {
	m := make(map[string]letters.Position, len(k))
	for i, p := range k {
		m[string(rune('A'+i))] = p
	}
	return m
}

// fold records every letter of r, keeping the better of old and new.
func (k *Keyboard) fold(r Result) {
	for _, l := range r {
		i := keyIndex(l.Char)
		if l.Position.Better(k[i]) {
			k[i] = l.Position
		}
	}
}

func keyIndex(c byte) int {
	if !letters.IsUpper(c) {
		panic(fmt.Sprintf("game: keyboard has no key %q", c))
	}
	return int(c - 'A')
}

// Game holds the state of a single Wordle session.
type Game struct {
	ID       string      // Unique game identifier (UUID).
	secret   string      // Uppercase; fixed for the lifetime of the game.
	keyboard Keyboard    // Best-seen position per letter.
	list     *words.List // Validation source for guesses.
}

// Secret returns the word being guessed, for end-of-game reveal.
func (g *Game) Secret() string { return g.secret }

// Keyboard returns a copy of the current keyboard state.
func (g *Game) Keyboard() Keyboard { return g.keyboard }

// Words returns the list this game validates guesses against.
func (g *Game) Words() *words.List { return g.list }
