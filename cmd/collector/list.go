// List command: dump the roster for inspection.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored record across all partitions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, logger, err := buildStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rows, err := store.LocateAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch roster: %w", err)
	}

	if flagListJSON {
		output, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal rows: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	for _, row := range rows {
		fmt.Printf("%-24s %-20s %-44s %s\n",
			row.Location, row.Record.Username, row.Record.Wallet, row.Record.Role)
	}
	fmt.Printf("%d records\n", len(rows))
	return nil
}
