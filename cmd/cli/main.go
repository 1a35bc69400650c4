package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/adapter/http/handler"
	"github.com/iho/stockledger/internal/adapter/http/middleware"
	"github.com/iho/stockledger/internal/infrastructure/config"
	"github.com/iho/stockledger/internal/infrastructure/postgres"
)

var errDiscrepancies = errors.New("reconciliation found discrepancies")

// migrate hooks, replaced in tests.
var (
	migrateUp   = postgres.RunMigrations
	migrateDown = postgres.RunMigrationsDown
)

type options struct {
	baseURL string
	timeout time.Duration
	actorID string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "stockledger-cli",
		Short:         "Stock ledger CLI tool",
		Long:          `A command line interface for interacting with the stock ledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the stock ledger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.actorID, "actor", os.Getenv("STOCKLEDGER_ACTOR_ID"), "Acting user ID sent with movements")

	rootCmd.AddCommand(newCardCmd(opts), newMovementCmd(opts), newReconcileCmd(opts), newMigrateCmd())

	return rootCmd
}

func newCardCmd(opts *options) *cobra.Command {
	cardCmd := &cobra.Command{
		Use:   "card",
		Short: "Stock card operations",
	}

	var create dto.CreateStockCardRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a stock card",
		RunE: func(cmd *cobra.Command, args []string) error {
			var card dto.StockCardResponse
			if err := newClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/stock-cards", create, &card); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), card)
		},
	}
	createCmd.Flags().StringVar(&create.FacilityID, "facility", "", "Facility ID")
	createCmd.Flags().StringVar(&create.ProgramID, "program", "", "Program ID")
	createCmd.Flags().StringVar(&create.OrderableID, "orderable", "", "Orderable ID")

	getCmd := &cobra.Command{
		Use:   "get <stock-card-id>",
		Short: "Show a stock card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var card dto.StockCardResponse
			if err := newClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/stock-cards/"+url.PathEscape(args[0]), nil, &card); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), card)
		},
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stock cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cards []dto.StockCardResponse
			if err := newClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/stock-cards"+pageQuery(limit, offset), nil, &cards); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFACILITY\tPROGRAM\tORDERABLE\tSOH")
			for _, c := range cards {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.ID, truncate(c.FacilityID, 20), truncate(c.ProgramID, 20), truncate(c.OrderableID, 20), c.StockOnHand)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	var itemLimit, itemOffset int
	lineItemsCmd := &cobra.Command{
		Use:   "line-items <stock-card-id>",
		Short: "List a stock card's line items in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []dto.LineItemResponse
			path := "/api/v1/stock-cards/" + url.PathEscape(args[0]) + "/line-items" + pageQuery(itemLimit, itemOffset)
			if err := newClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &items); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEQ\tKIND\tQTY\tBEFORE\tAFTER\tOCCURRED")
			for _, li := range items {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
					li.Sequence, li.Kind, li.Quantity, li.PreviousStockOnHand, li.StockOnHand, li.OccurredDate.Format(time.DateOnly))
			}
			return tw.Flush()
		},
	}
	lineItemsCmd.Flags().IntVar(&itemLimit, "limit", 20, "Page size")
	lineItemsCmd.Flags().IntVar(&itemOffset, "offset", 0, "Page offset")

	var at string
	sohCmd := &cobra.Command{
		Use:   "soh <stock-card-id>",
		Short: "Show stock on hand, optionally as of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/stock-cards/" + url.PathEscape(args[0]) + "/stock-on-hand"
			if at != "" {
				path += "?at=" + url.QueryEscape(at)
			}

			var soh dto.StockOnHandResponse
			if err := newClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &soh); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stock on hand: %d (%d line items)\n", soh.StockOnHand, soh.LineItems)
			return nil
		},
	}
	sohCmd.Flags().StringVar(&at, "at", "", "Date (YYYY-MM-DD or RFC 3339)")

	cardCmd.AddCommand(createCmd, getCmd, listCmd, lineItemsCmd, sohCmd)
	return cardCmd
}

func newMovementCmd(opts *options) *cobra.Command {
	movementCmd := &cobra.Command{
		Use:   "movement",
		Short: "Stock movement operations",
	}

	var (
		req      dto.RecordMovementRequest
		quantity int
		noticed  string
	)
	recordCmd := &cobra.Command{
		Use:   "record <stock-card-id>",
		Short: "Record a receipt, issue, adjustment or physical count",
		Long: `Record a single line item on a stock card.

Without --reason, --source or --destination the quantity is a physical count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quantity") {
				return errors.New("--quantity is required")
			}
			req.Quantity = &quantity
			if noticed != "" {
				req.NoticedDate = &noticed
			}
			if req.EventID == "" {
				req.EventID = uuid.NewString()
			}
			req.ActorID = opts.actorID

			var res dto.RecordMovementResponse
			path := "/api/v1/stock-cards/" + url.PathEscape(args[0]) + "/events"
			if err := newClient(opts).do(cmd.Context(), http.MethodPost, path, req, &res); err != nil {
				return err
			}

			for _, li := range res.LineItems {
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s #%d: %d -> %d\n", li.Kind, li.Sequence, li.PreviousStockOnHand, li.StockOnHand)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stock on hand: %d\n", res.StockOnHand)
			return nil
		},
	}
	f := recordCmd.Flags()
	f.IntVar(&quantity, "quantity", 0, "Quantity moved, or the counted quantity")
	f.StringVar(&req.ReasonID, "reason", "", "Reason ID")
	f.StringVar(&req.SourceID, "source", "", "Source node ID (receipt)")
	f.StringVar(&req.DestinationID, "destination", "", "Destination node ID (issue)")
	f.StringVar(&req.SourceFreeText, "source-text", "", "Free-text source")
	f.StringVar(&req.DestinationFreeText, "destination-text", "", "Free-text destination")
	f.StringVar(&req.ReasonFreeText, "reason-text", "", "Free-text reason")
	f.StringVar(&req.DocumentNumber, "document", "", "Document number")
	f.StringVar(&req.Signature, "signature", "", "Signature")
	f.StringVar(&req.OccurredDate, "occurred", time.Now().UTC().Format(time.DateOnly), "Occurred date (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&noticed, "noticed", "", "Noticed date, defaults to occurred")
	f.StringVar(&req.EventID, "event-id", "", "Event ID; generated when empty and reused as the idempotency key")

	movementCmd.AddCommand(recordCmd)
	return movementCmd
}

func newReconcileCmd(opts *options) *cobra.Command {
	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check cached balances against line item history",
	}

	cardCmd := &cobra.Command{
		Use:   "card <stock-card-id>",
		Short: "Reconcile one stock card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res dto.ReconciliationResponse
			path := "/api/v1/stock-cards/" + url.PathEscape(args[0]) + "/reconciliation"
			if err := newClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &res); err != nil {
				return err
			}

			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.IsReconciled {
				return errDiscrepancies
			}
			return nil
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reconcile every stock card",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ReconciliationReportResponse
			if err := newClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/reconciliation", nil, &report); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d stock cards, %d reconciled\n", report.TotalCards, report.ReconciledCards)
			for _, d := range report.Discrepancies {
				fmt.Fprintf(out, "  %s: recorded %d, calculated %d, %d snapshot mismatches\n",
					d.StockCardID, d.RecordedStockOnHand, d.CalculatedStockOnHand, len(d.SnapshotMismatches))
			}
			if len(report.Discrepancies) > 0 {
				return errDiscrepancies
			}
			return nil
		},
	}

	reconcileCmd.AddCommand(cardCmd, reportCmd)
	return reconcileCmd
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations (uses DATABASE_URL and MIGRATIONS_PATH)",
	}

	run := func(fn func(string, string, zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
			return fn(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: run(migrateUp)},
		&cobra.Command{Use: "down", Short: "Roll back the last migration", RunE: run(migrateDown)},
	)
	return migrateCmd
}

type apiClient struct {
	baseURL string
	actorID string
	http    *http.Client
}

func newClient(opts *options) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		actorID: opts.actorID,
		http:    &http.Client{Timeout: opts.timeout},
	}
}

// do sends body as JSON and decodes a 2xx response into out. POSTs carry an
// idempotency key so a retried command is not applied twice.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set(middleware.IdempotencyKeyHeader, uuid.NewString())
	}
	if c.actorID != "" {
		req.Header.Set(handler.ActorIDHeader, c.actorID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
			}
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func pageQuery(limit, offset int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return "?" + q.Encode()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
