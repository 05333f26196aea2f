package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

func wordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Inspect and export word lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print answer/allowed counts for the configured source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, cleanup, err := loadWords(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			a, g := list.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "answers: %d\nallowed: %d\n", a, g)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export DB_PATH",
		Short: "Write the configured word lists into a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, cleanup, err := loadWords(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			db, err := openDB(args[0])
			if err != nil {
				return err
			}
			defer db.Close()

			if err := words.Store(ctx, db, list); err != nil {
				return err
			}
			a, g := list.Stats()
			log.Info().Str("db", args[0]).Int("answers", a).Int("allowed", g).Msg("exported word lists")
			return nil
		},
	})
	return cmd
}
