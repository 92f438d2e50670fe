// Run command: connect to Discord and serve until interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/internal/discord"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, logger, err := buildStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bot, err := discord.NewBot(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	if err := bot.Open(); err != nil {
		return err
	}
	defer func() {
		if err := bot.Close(); err != nil {
			logger.Warn("close gateway", zap.Error(err))
		}
	}()

	logger.Info("collector running, press Ctrl-C to stop")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	return nil
}
