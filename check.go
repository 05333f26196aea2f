package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/terminal"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check SECRET GUESS",
		Short: "Score GUESS against SECRET and print the tiles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, cleanup, err := loadWords(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := game.NewWithSecret(list, args[0])
			if err != nil {
				return err
			}
			r, err := g.MakeGuess(args[1])
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, terminal.RenderResult(r))
			for _, l := range r {
				fmt.Fprintf(out, "%c %s\n", l.Char, l.Position)
			}
			return nil
		},
	}
}
