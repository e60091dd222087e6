package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/apiclient"
	"github.com/iho/clearledger/internal/infrastructure/config"
	"github.com/iho/clearledger/internal/infrastructure/logger"
	"github.com/iho/clearledger/internal/infrastructure/postgres"
)

// errInconsistent makes reconcile exit non-zero when storage disagrees.
var errInconsistent = errors.New("ledger is not consistent")

func newAPIClient() *apiclient.Client {
	return apiclient.New(baseURL, apiclient.WithHTTPClient(&http.Client{Timeout: timeout}))
}

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Client operations",
	}

	var (
		query  string
		limit  int
		offset int
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := newAPIClient().ListClients(cmd.Context(), query, limit, offset)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), list)
			}
			return printClients(cmd.OutOrStdout(), list.Clients)
		},
	}
	listCmd.Flags().StringVarP(&query, "q", "q", "", "Search by name, phone or company")
	listCmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	cmd.AddCommand(listCmd)
	return cmd
}

func statementCmd() *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "statement <client-id>",
		Short: "Show a client's account statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := apiclient.NewStatementView(newAPIClient())
			show := func(ctx context.Context) error {
				s, err := view.Refresh(ctx, args[0])
				if errors.Is(err, apiclient.ErrStale) {
					return nil
				}
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), s)
				}
				return printStatement(cmd.OutOrStdout(), s)
			}

			if !watch {
				return show(cmd.Context())
			}

			return watchStatement(cmd.Context(), interval, show)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Refresh interval with --watch")

	return cmd
}

func watchStatement(ctx context.Context, interval time.Duration, show func(context.Context) error) error {
	if err := show(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := show(ctx); err != nil {
				return err
			}
		}
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show organization-wide totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := newAPIClient().Stats(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			return printStats(cmd.OutOrStdout(), stats)
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Cross-check computed totals against storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newAPIClient().Reconciliation(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				printReconciliation(out, report)
			}

			if !report.Consistent {
				return errInconsistent
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load configuration from this file")

	newMigrator := func(cmd *cobra.Command) (*postgres.Migrator, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			return nil, err
		}
		log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
		return postgres.NewMigrator(cfg.MigrationsPath, cfg.DatabaseURL, log), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(cmd)
			if err != nil {
				return err
			}
			return m.Up()
		},
	}, &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(cmd)
			if err != nil {
				return err
			}
			return m.Down()
		},
	}, &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(cmd)
			if err != nil {
				return err
			}
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %v)\n", v, dirty)
			return nil
		},
	})

	return cmd
}

func printClients(w io.Writer, clients []*dto.ClientResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tCOMPANY")
	for _, c := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, truncate(c.Name, 30), c.Phone, truncate(c.Company, 30))
	}
	return tw.Flush()
}

func printStatement(w io.Writer, s *dto.StatementResponse) error {
	if s.Client != nil {
		fmt.Fprintf(w, "%s (%s)\n", s.Client.Name, s.Client.ID)
	}
	fmt.Fprintf(w, "Receipts: %s  Payments: %s  Balance: %s\n\n", s.TotalReceipts, s.TotalPayments, s.Balance)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tKIND\tID\tAMOUNT\tNOTE")
	for _, tx := range s.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tx.Date, tx.Kind, tx.ID, tx.Amount, truncate(tx.Note, 40))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Malformed) > 0 {
		fmt.Fprintf(w, "\n%d record(s) with missing amounts counted as zero\n", len(s.Malformed))
	}
	return nil
}

func printStats(w io.Writer, s *dto.StatsResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Clients\t%d\n", s.ClientsCount)
	fmt.Fprintf(tw, "Receipts\t%d\t%s\n", s.ReceiptsCount, s.TotalReceipts)
	fmt.Fprintf(tw, "Payments\t%d\t%s\n", s.PaymentsCount, s.TotalPayments)
	fmt.Fprintf(tw, "Balance\t\t%s\n", s.Balance)
	return tw.Flush()
}

func printReconciliation(w io.Writer, r *dto.ReconciliationResponse) {
	if r.Consistent {
		fmt.Fprintln(w, "Reconciliation PASSED")
	} else {
		fmt.Fprintln(w, "Reconciliation FAILED")
	}

	for _, d := range r.Discrepancies {
		fmt.Fprintf(w, "  %s: computed %s, storage %s\n", d.Field, d.InMemory, d.Storage)
	}
	if len(r.MalformedRecords) > 0 {
		fmt.Fprintf(w, "Malformed records: %d\n", len(r.MalformedRecords))
	}
}
