// Prune command: administrative removal of malformed and duplicate rows.
package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

var flagPruneDryRun bool

var walletShape = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete malformed and duplicate rows",
	Long: `Prune scans every partition and deletes rows whose wallet address is
malformed, plus any later duplicate of a user id already seen in a
higher-priority partition. Deletions are applied in descending row order per
partition, so earlier deletions never shift a pending one.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&flagPruneDryRun, "dry-run", false, "report what would be deleted without deleting")
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, logger, err := buildStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rows, err := store.LocateAll(ctx)
	if err != nil {
		return fmt.Errorf("snapshot roster: %w", err)
	}

	var doomed []types.Location
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		switch {
		case !walletShape.MatchString(row.Record.Wallet):
			fmt.Printf("malformed wallet at %s (%s)\n", row.Location, row.Record.Username)
			doomed = append(doomed, row.Location)
		case seen[row.Record.UserID]:
			fmt.Printf("duplicate of %s at %s\n", row.Record.UserID, row.Location)
			doomed = append(doomed, row.Location)
		default:
			seen[row.Record.UserID] = true
		}
	}

	if len(doomed) == 0 {
		fmt.Println("nothing to prune")
		return nil
	}
	if flagPruneDryRun {
		fmt.Printf("would delete %d rows\n", len(doomed))
		return nil
	}

	if err := store.DeleteMany(ctx, doomed); err != nil {
		return fmt.Errorf("prune: %w", err)
	}
	fmt.Printf("deleted %d rows\n", len(doomed))
	return nil
}
