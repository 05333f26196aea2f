// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create new games with a random (injected source) or explicit secret.
//   - Validate guesses against the word list (ASCII, length, membership).
//   - Score guesses with the duplicate-aware Wordle rule.
//   - Fold each result into the session keyboard, never downgrading a letter.
//
// Notes:
//   - Attempts and win/loss are the caller's business: the engine exposes
//     MaxAttempts and Won but keeps no terminal state.
//   - A Game is not safe for concurrent use; hosts serialize per session.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

// ErrBadSecret is returned by NewWithSecret for anything but 5 ASCII letters.
var ErrBadSecret = errors.New("game: secret must be 5 ASCII letters")

// New starts a game with a secret drawn uniformly from list's answers.
// Pass words.CryptoRand{} for real play or a seeded *rand.Rand in tests.
func New(list *words.List, rng words.Rand) *Game {
	return &Game{
		ID:     uuid.NewString(),
		secret: list.Random(rng),
		list:   list,
	}
}

// NewWithSecret starts a game with a fixed secret. The secret does not
// need to be in the answer list, only well-formed.
func NewWithSecret(list *words.List, secret string) (*Game, error) {
	s := letters.UpperString(secret)
	if !words.IsWord(s) {
		return nil, fmt.Errorf("%w: %q", ErrBadSecret, secret)
	}
	return &Game{
		ID:     uuid.NewString(),
		secret: s,
		list:   list,
	}, nil
}

// MakeGuess validates raw, scores it against the secret and updates the keyboard.
// On a validation error nothing changes and the error is one of the words.Err* values.
func (g *Game) MakeGuess(raw string) (Result, error) {
	if err := g.list.Validate(raw); err != nil {
		return Result{}, err
	}
	r := Score(g.secret, letters.UpperString(raw))
	g.keyboard.fold(r)
	return r, nil
}

// Score classifies every letter of guess against secret.
//
// Pass 1: ClassifyKnown settles each position it can (Correct, or NotInWord
// when the letter is absent from the secret); the rest are deferred.
//
// Pass 2: for each letter, remaining = occurrences in secret - Correct hits
// in the guess. Deferred positions, left to right, take one unit of remaining
// capacity each and become WrongPosition; once it runs out they are NotInWord.
//
// Both words must be 5 uppercase ASCII letters; anything else panics.
func Score(secret, guess string) Result {
	if !words.IsWord(secret) || !words.IsWord(guess) {
		panic(fmt.Sprintf("game: cannot score %q against %q", guess, secret))
	}

	var (
		res      Result
		deferred [words.WordLength]bool
		inSecret [26]int
		correct  [26]int
	)

	// First pass: settle what can be settled position by position.
	for i := 0; i < words.WordLength; i++ {
		c := guess[i]
		inSecret[secret[i]-'A']++
		pos, known := letters.ClassifyKnown(c, secret[i], secret)
		if !known {
			deferred[i] = true
			res[i] = letters.New(c, letters.Unknown)
			continue
		}
		if pos == letters.Correct {
			correct[c-'A']++
		}
		res[i] = letters.New(c, pos)
	}

	// Capacity left for WrongPosition credit, per letter.
	var remaining [26]int
	for j := range remaining {
		remaining[j] = inSecret[j] - correct[j]
		if remaining[j] < 0 {
			panic(fmt.Sprintf("game: %c matched %d times but occurs %d times in %s",
				'A'+j, correct[j], inSecret[j], secret))
		}
	}

	// Second pass: earlier positions claim capacity first.
	for i := 0; i < words.WordLength; i++ {
		if !deferred[i] {
			continue
		}
		j := guess[i] - 'A'
		if remaining[j] > 0 {
			res[i].Position = letters.WrongPosition
			remaining[j]--
		} else {
			res[i].Position = letters.NotInWord
		}
	}
	return res
}
