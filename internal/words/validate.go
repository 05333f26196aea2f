package words

import (
	"errors"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
)

// Guess validation errors. All of them are user-input errors: callers report
// them and ask again.
var (
	ErrNotASCII    = errors.New("guess must be exclusively ASCII characters")
	ErrWrongLength = errors.New("guess must be exactly 5 letters")
	ErrNotAWord    = errors.New("guess must be a valid word")
)

// Validate checks a raw guess against the list.
//
// The input is ASCII-uppercased, then checked in this order:
//   1. every character is ASCII        (ErrNotASCII)
//   2. exactly WordLength characters   (ErrWrongLength)
//   3. present in the allowed set      (ErrNotAWord)
//
// The order is user-visible: an overlong non-ASCII string reports ErrNotASCII.
// No trimming happens here.
func (l *List) Validate(raw string) error {
	guess := letters.UpperString(raw)
	if !isASCII(guess) {
		return ErrNotASCII
	}
	if len(guess) != WordLength {
		return ErrWrongLength
	}
	if _, ok := l.allowed[guess]; !ok {
		return ErrNotAWord
	}
	return nil
}

// Reason maps a validation error to a stable wire code ("" for nil or unknown errors).
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotASCII):
		return "not_ascii"
	case errors.Is(err, ErrWrongLength):
		return "wrong_length"
	case errors.Is(err, ErrNotAWord):
		return "not_a_word"
	}
	return ""
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
