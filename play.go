package main

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/terminal"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

func playCmd() *cobra.Command {
	var (
		dailyMode bool
		seed      uint64
		keyboard  bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			list, cleanup, err := loadWords(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var g *game.Game
			switch {
			case dailyMode:
				_, secret := daily.Secret(list, time.Now(), cfg.DailySalt)
				if g, err = game.NewWithSecret(list, secret); err != nil {
					return err
				}
			case cmd.Flags().Changed("seed"):
				g = game.New(list, rand.New(rand.NewPCG(seed, seed)))
			default:
				g = game.New(list, words.CryptoRand{})
			}

			_, err = terminal.Play(ctx, g, cmd.InOrStdin(), cmd.OutOrStdout(), terminal.Options{ShowKeyboard: keyboard})
			return err
		},
	}
	cmd.Flags().BoolVar(&dailyMode, "daily", false, "play today's shared word")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible secret word")
	cmd.Flags().BoolVar(&keyboard, "keyboard", true, "show the keyboard after each guess")
	return cmd
}
