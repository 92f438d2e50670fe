// Shared helpers for collector CLI commands.
package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/internal/logging"
	"github.com/Karatekid05/monadians-wallet-collector/internal/roster"
	"github.com/Karatekid05/monadians-wallet-collector/internal/sheets"
)

// buildStore validates the loaded config, builds the logger and the sheet
// client, and returns a ready Store with partition tabs and headers ensured.
// The caller must defer logger.Sync().
func buildStore(ctx context.Context) (*roster.Store, *zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	client, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.CredentialsFile, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("sheets client: %w", err)
	}

	store := roster.NewStore(client, roster.NewResolver(cfg.Mappings), logger)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return store, logger, nil
}
