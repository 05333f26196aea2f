// internal/letters/letters.go
//
// Value types for a single scored letter.
// Defines:
//   - Position: the three-way verdict for one letter, plus the Unknown
//     sentinel used by the keyboard for letters never guessed.
//   - Letter: an uppercase ASCII character paired with its Position.
//   - ClassifyKnown: the per-position check that needs no whole-guess context.
//
// Positions are totally ordered by how much they tell the player:
//   Unknown < NotInWord < WrongPosition < Correct
// The keyboard only ever moves a letter upwards in this order.

package letters

import (
	"fmt"
	"strings"
)

// Position is the classification of a letter in a guess.
type Position int8

const (
	// Unknown is only used by the keyboard: the letter has not been guessed yet.
	Unknown Position = iota
	// NotInWord: the letter is absent (or every occurrence is already accounted for).
	NotInWord
	// WrongPosition: the letter is in the word, but somewhere else.
	WrongPosition
	// Correct: the letter is in the word at this position.
	Correct
)

// Better reports whether p ranks strictly above q.
func (p Position) Better(q Position) bool { return p > q }

// String returns the wire name of the position (the hit/present/miss vocabulary).
func (p Position) String() string {
	switch p {
	case Unknown:
		return "unknown"
	case NotInWord:
		return "miss"
	case WrongPosition:
		return "present"
	case Correct:
		return "hit"
	}
	return fmt.Sprintf("Position(%d)", int8(p))
}

// MarshalText encodes a Position as its wire name.
func (p Position) MarshalText() ([]byte, error) {
	if p < Unknown || p > Correct {
		return nil, fmt.Errorf("letters: invalid position %d", int8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a wire name back into a Position.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePosition is the inverse of String.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(s) {
	case "unknown", "":
		return Unknown, nil
	case "miss":
		return NotInWord, nil
	case "present":
		return WrongPosition, nil
	case "hit":
		return Correct, nil
	}
	return Unknown, fmt.Errorf("letters: unknown position %q", s)
}

// Letter is one scored character of a guess.
type Letter struct {
	Char     byte     // Always uppercase A–Z.
	Position Position // Never Unknown for a scored letter.
}

// New builds a Letter, uppercasing c.
func New(c byte, p Position) Letter {
	return Letter{Char: Upper(c), Position: p}
}

func (l Letter) String() string {
	return string(l.Char) + ":" + l.Position.String()
}

// ClassifyKnown resolves the letter at one position when it can be decided
// without looking at the rest of the guess.
//
// It returns (Correct, true) when guessed matches the secret at this position,
// (NotInWord, true) when the secret has no guessed letter at all, and
// (Unknown, false) otherwise: the letter is in the word elsewhere, and only
// whole-guess accounting can tell WrongPosition from NotInWord.
//
// Comparison is case-sensitive; callers uppercase first.
func ClassifyKnown(guessed, secretChar byte, secret string) (Position, bool) {
	if guessed == secretChar {
		return Correct, true
	}
	if strings.IndexByte(secret, guessed) < 0 {
		return NotInWord, true
	}
	return Unknown, false
}

// Upper maps an ASCII lowercase letter to uppercase and leaves anything else alone.
func Upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// UpperString uppercases the ASCII letters of s and leaves every other
// byte alone, so non-ASCII input stays non-ASCII.
func UpperString(s string) string {
	b := []byte(s)
	for i, c := range b {
		b[i] = Upper(c)
	}
	return string(b)
}

// IsUpper reports whether c is in A–Z.
func IsUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
