// Package assets embeds the default word lists shipped with the binary.
//
// answers.txt holds the curated secret-eligible words, allowed.txt the
// acceptable guesses. One word per line; blank lines and #-comments are skipped.
package assets

import (
	"bufio"
	"embed"
	"strings"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, letters.UpperString(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded secret-eligible words, uppercased.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded acceptable guesses, uppercased.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
