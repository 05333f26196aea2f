// main.go
//
// Entry point for the wordle binary.
// Commands:
//   - serve : JSON HTTP API (see internal/httpserver)
//   - play  : interactive game in the terminal
//   - check : score one guess against a given secret
//   - words : word list maintenance (export to SQLite)
//
// Configuration comes from the environment (optionally a .env file); see
// internal/config for the variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

var (
	cfg      *config.Config
	logLevel string
	logJSON  bool

	rootCmd = &cobra.Command{
		Use:               "wordle",
		Short:             "Wordle game engine, API server and terminal game",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log JSON instead of console output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(wordsCmd())
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and configures the global logger.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	lvlName := cfg.LogLevel
	if logLevel != "" {
		lvlName = logLevel
	}
	lvl, err := zerolog.ParseLevel(lvlName)
	if err != nil {
		return fmt.Errorf("log level %q: %w", lvlName, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if !logJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})
	}
	return nil
}

// loadWords builds the word list from the configured source.
func loadWords(ctx context.Context) (*words.List, func(), error) {
	src := words.Sources{
		AnswersFile: cfg.WordsAnswersFile,
		AllowedFile: cfg.WordsAllowedFile,
	}
	cleanup := func() {}
	if cfg.WordsDB != "" {
		db, err := openDB(cfg.WordsDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open words db: %w", err)
		}
		src.DB = db
		cleanup = func() { _ = db.Close() }
	}
	list, err := words.Load(ctx, src)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load word lists: %w", err)
	}
	a, g := list.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Msg("word lists ready")
	return list, cleanup, nil
}
