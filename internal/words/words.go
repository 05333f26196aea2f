// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Hold the two reference sets: secret-eligible answers and acceptable guesses.
//   - Load them from environment-provided files, a SQLite database, or the
//     embedded defaults in the assets package.
//   - Pick a uniformly random answer using an injected generator.
//
// Word Lists:
//   - "answers": curated secret-eligible words.
//   - "allowed": acceptable guesses (always includes answers).
//
// Load behavior:
//   1. If Sources.DB is set, read both lists from its words table.
//   2. If AnswersFile and AllowedFile are both set, read one list from each.
//   3. If only AllowedFile is set, use that file for both lists.
//   4. Otherwise fall back to the embedded lists.
//
// Constraints:
//   • Words must be 5 ASCII letters; anything else in a source is skipped.
//   • Lists are normalized to uppercase.
//   • A List is immutable once built and safe to share between goroutines.

package words

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-core/assets"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
)

// WordLength is the number of letters in every word.
const WordLength = 5

// ErrNoAnswers is returned when a source yields no usable answer words.
var ErrNoAnswers = errors.New("words: answers list is empty")

// List is an immutable pair of word sets. Every answer is also allowed.
type List struct {
	answers    []string            // canonical answers, load order
	answersSet map[string]struct{} // answers only
	allowed    map[string]struct{} // answers ∪ guesses
}

// NewList builds a List from raw word slices.
// Entries are uppercased and trimmed; invalid entries are dropped.
// Answers are merged into the allowed set.
func NewList(answers, allowed []string) (*List, error) {
	ans := normalize(answers)
	if len(ans) == 0 {
		return nil, ErrNoAnswers
	}
	set := toSet(ans)
	for _, w := range normalize(allowed) {
		set[w] = struct{}{}
	}
	return &List{answers: ans, answersSet: toSet(ans), allowed: set}, nil
}

// Sources selects where Load reads word lists from.
type Sources struct {
	AnswersFile string
	AllowedFile string
	DB          *sql.DB
}

// Load builds a List from the first configured source.
func Load(ctx context.Context, src Sources) (*List, error) {
	switch {
	case src.DB != nil:
		return LoadSQLite(ctx, src.DB)

	case src.AnswersFile != "" && src.AllowedFile != "":
		ans, err := readWordFile(src.AnswersFile)
		if err != nil {
			return nil, err
		}
		all, err := readWordFile(src.AllowedFile)
		if err != nil {
			return nil, err
		}
		return NewList(ans, all)

	case src.AnswersFile == "" && src.AllowedFile != "":
		all, err := readWordFile(src.AllowedFile)
		if err != nil {
			return nil, err
		}
		return NewList(all, nil)

	case src.AnswersFile != "":
		return nil, errors.New("words: answers file given without allowed file")

	default:
		return Embedded()
	}
}

// Embedded builds a List from the word files compiled into the binary.
func Embedded() (*List, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("read embedded answers: %w", err)
	}
	all, err := assets.AllowedList()
	if err != nil {
		return nil, fmt.Errorf("read embedded allowed: %w", err)
	}
	return NewList(ans, all)
}

// MustEmbedded is Embedded for tests and tools; it panics on a broken build.
func MustEmbedded() *List {
	l, err := Embedded()
	if err != nil {
		panic(err)
	}
	return l
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// normalize uppercases, trims, drops invalid entries and duplicates, keeping order.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	skipped := 0
	for _, raw := range in {
		w := letters.UpperString(strings.TrimSpace(raw))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isWord(w) {
			skipped++
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("words: dropped invalid entries")
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isWord reports whether s is exactly WordLength uppercase ASCII letters.
func isWord(s string) bool {
	if len(s) != WordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsWord reports whether s is a well-formed word: 5 uppercase ASCII letters.
func IsWord(s string) bool { return isWord(s) }

// Answers returns a copy of the answer list.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Allowed returns the acceptable guesses, sorted.
func (l *List) Allowed() []string {
	out := make([]string, 0, len(l.allowed))
	for w := range l.allowed {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// IsAllowed reports whether w (any case) is an acceptable guess.
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowed[letters.UpperString(w)]
	return ok
}

// IsAnswer reports whether w (any case) is a secret-eligible word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[letters.UpperString(w)]
	return ok
}

// AnswerAt returns the i-th answer, wrapping i into range.
func (l *List) AnswerAt(i int) string {
	n := len(l.answers)
	return l.answers[((i%n)+n)%n]
}

// Random picks an answer uniformly using rng.
func (l *List) Random(rng Rand) string {
	return l.answers[rng.IntN(len(l.answers))]
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}
