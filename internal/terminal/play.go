package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
)

// Outcome is how a terminal game ended.
type Outcome struct {
	Won      bool
	Attempts int  // accepted guesses
	Quit     bool // input ended or ctx was cancelled before the game finished
}

// Options tunes the play loop.
type Options struct {
	Attempts     int  // defaults to game.MaxAttempts
	ShowKeyboard bool // draw the keyboard after each guess
}

// Play runs one game: it reads guesses line by line from in, re-prompts on
// invalid input and counts attempts itself. The secret is revealed on win,
// loss or quit. Cancelling ctx ends the game even while it waits for a line.
func Play(ctx context.Context, g *game.Game, in io.Reader, out io.Writer, opts Options) (Outcome, error) {
	if opts.Attempts <= 0 {
		opts.Attempts = game.MaxAttempts
	}
	p := &printer{w: out}
	done := make(chan struct{})
	defer close(done)
	lines, readErr := scanLines(in, done)
	remaining := opts.Attempts
	var res Outcome

	p.println(TitleStyle.Render("Welcome to Wordle!"))

loop:
	for remaining > 0 {
		if ctx.Err() != nil {
			res.Quit = true
			break
		}
		p.printf("%s ", SubtleStyle.Render(fmt.Sprintf("[%d left] >", remaining)))

		var text string
		select {
		case <-ctx.Done():
			res.Quit = true
			break loop
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return res, fmt.Errorf("read guess: %w", err)
				}
				res.Quit = true
				break loop
			}
			text = l
		}
		guess := strings.TrimSpace(text)
		if guess == "" {
			continue
		}

		r, err := g.MakeGuess(guess)
		if err != nil {
			p.println(ErrorStyle.Render(err.Error()))
			continue
		}
		remaining--
		res.Attempts++
		log.Debug().Str("guess", r.Word()).Int("remaining", remaining).Msg("guess accepted")

		p.println(RenderResult(r))
		if opts.ShowKeyboard {
			p.println(RenderKeyboard(g.Keyboard()))
		}
		if game.Won(r) {
			res.Won = true
			p.printf("\nCongratulations! The word was %s!\n", g.Secret())
			return res, p.err
		}
	}

	if res.Quit {
		p.printf("\nThanks for playing Wordle! The word was %s!\n", g.Secret())
	} else {
		p.printf("\nOut of guesses! The word was %s!\n", g.Secret())
	}
	return res, p.err
}

// scanLines feeds lines from in to the returned channel until in is exhausted
// or done is closed. The channel is closed at EOF, after the scanner's error
// (nil at a clean EOF) has been sent on the second channel. A read that is
// blocked when done closes keeps its goroutine until in returns.
func scanLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// printer remembers the first write error so the loop body stays readable.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}
