// Package sheets implements the spreadsheet-backed table client. All remote
// reads and writes funnel through here; rate limiting is absorbed by the
// retry policy and every other failure propagates unmodified to the caller.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// Compile-time interface check: Client must implement TableAPI.
var _ types.TableAPI = (*Client)(nil)

// Client talks to one spreadsheet through the Sheets v4 API. Each partition
// is a tab of that spreadsheet; tab IDs are resolved lazily and remembered,
// since tab identity never changes while the bot runs.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	retry         *retrier
	logger        *zap.Logger

	mu     sync.Mutex
	tabIDs map[string]int64
}

// New builds a Client for the given spreadsheet. credentialsFile points at a
// service-account JSON key; when empty, application default credentials are
// used.
func New(ctx context.Context, spreadsheetID, credentialsFile string, logger *zap.Logger) (*Client, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		retry:         newRetrier(DefaultRetryPolicy(), logger),
		logger:        logger,
		tabIDs:        make(map[string]int64),
	}, nil
}

// Read returns the cell values inside rowRange as strings.
func (c *Client) Read(ctx context.Context, p types.Partition, rowRange string) ([][]string, error) {
	var resp *sheets.ValueRange
	err := c.retry.Do(ctx, "values.get", func() error {
		var err error
		resp, err = c.svc.Spreadsheets.Values.
			Get(c.spreadsheetID, a1(p, rowRange)).
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write overwrites rowRange with rows, raw (no remote cell parsing).
func (c *Client) Write(ctx context.Context, p types.Partition, rowRange string, rows [][]string) error {
	body := &sheets.ValueRange{Values: toValues(rows)}
	return c.retry.Do(ctx, "values.update", func() error {
		_, err := c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, a1(p, rowRange), body).
			ValueInputOption("RAW").
			Context(ctx).Do()
		return err
	})
}

// Append adds rows after the last non-empty row of the partition.
func (c *Client) Append(ctx context.Context, p types.Partition, rows [][]string) error {
	body := &sheets.ValueRange{Values: toValues(rows)}
	return c.retry.Do(ctx, "values.append", func() error {
		_, err := c.svc.Spreadsheets.Values.
			Append(c.spreadsheetID, a1(p, types.DataRange), body).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
}

// DeleteRow removes the data row at the given 1-based index. The header row
// occupies grid index 0, so data row n is grid row n.
func (c *Client) DeleteRow(ctx context.Context, p types.Partition, rowIndex int) error {
	if rowIndex < 1 {
		return types.ErrInvalidRow
	}
	tabID, err := c.tabID(ctx, string(p))
	if err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    tabID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex),
					EndIndex:   int64(rowIndex) + 1,
				},
			},
		}},
	}
	return c.retry.Do(ctx, "rows.delete", func() error {
		_, err := c.svc.Spreadsheets.
			BatchUpdate(c.spreadsheetID, req).
			Context(ctx).Do()
		return err
	})
}

// ListPartitions returns the titles of every tab in the spreadsheet.
func (c *Client) ListPartitions(ctx context.Context) ([]string, error) {
	meta, err := c.metadata(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

// CreatePartition adds a new empty tab with the given title.
func (c *Client) CreatePartition(ctx context.Context, name string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}
	err := c.retry.Do(ctx, "sheets.add", func() error {
		_, err := c.svc.Spreadsheets.
			BatchUpdate(c.spreadsheetID, req).
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return err
	}
	// Tab IDs changed; force a metadata refresh on next lookup.
	c.mu.Lock()
	c.tabIDs = make(map[string]int64)
	c.mu.Unlock()
	c.logger.Info("created partition", zap.String("partition", name))
	return nil
}

// tabID resolves a tab title to its numeric sheet ID, fetching spreadsheet
// metadata on a miss.
func (c *Client) tabID(ctx context.Context, title string) (int64, error) {
	c.mu.Lock()
	id, ok := c.tabIDs[title]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	meta, err := c.metadata(ctx)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	for _, s := range meta.Sheets {
		c.tabIDs[s.Properties.Title] = s.Properties.SheetId
	}
	id, ok = c.tabIDs[title]
	c.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrPartitionUnknown, title)
	}
	return id, nil
}

func (c *Client) metadata(ctx context.Context) (*sheets.Spreadsheet, error) {
	var meta *sheets.Spreadsheet
	err := c.retry.Do(ctx, "spreadsheet.get", func() error {
		var err error
		meta, err = c.svc.Spreadsheets.
			Get(c.spreadsheetID).
			Fields("sheets.properties.title", "sheets.properties.sheetId").
			Context(ctx).Do()
		return err
	})
	return meta, err
}

// a1 qualifies a row range with the tab title, quoting titles that contain
// spaces.
func a1(p types.Partition, rowRange string) string {
	title := string(p)
	if strings.ContainsAny(title, " !") {
		title = "'" + strings.ReplaceAll(title, "'", "''") + "'"
	}
	return title + "!" + rowRange
}

func toValues(rows [][]string) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return values
}
