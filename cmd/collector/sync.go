// Sync command: one-shot role refresh over every stored member.
package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/Karatekid05/monadians-wallet-collector/internal/discord"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-derive every member's role and reconcile the sheet tabs",
	Long: `Sync takes a snapshot of every stored record, looks up each member's
current highest-priority role over the Discord REST API, and applies the
resulting moves, updates, and removals sequentially. Run it after a role
shuffle, or on a schedule.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, logger, err := buildStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Role lookups only need the REST API; no gateway connection.
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	dir := discord.NewRoleDirectory(session, cfg.GuildID, cfg.Mappings)

	report, err := store.RefreshRoles(ctx, dir, cfg.PoolSize(), nil)
	if err != nil {
		return fmt.Errorf("refresh roles: %w", err)
	}

	fmt.Printf("scanned %d, unchanged %d, updated %d, moved %d\n",
		report.Scanned, report.Unchanged, report.Result.Updated, report.Result.Moved)
	return nil
}
