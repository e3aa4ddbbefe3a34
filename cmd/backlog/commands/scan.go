package commands

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/carson-networks/sms-ledger/internal/enrichment"
	"github.com/carson-networks/sms-ledger/internal/operator"
	"github.com/carson-networks/sms-ledger/internal/parser"
	"github.com/carson-networks/sms-ledger/internal/pipeline"
	"github.com/carson-networks/sms-ledger/internal/service"
	"github.com/carson-networks/sms-ledger/internal/sms"
	"github.com/carson-networks/sms-ledger/internal/storage"
	"github.com/carson-networks/sms-ledger/internal/storage/migrations"
)

// Tally order for the summary; matches the order a message moves through
// the pipeline.
var tallyOrder = []pipeline.Kind{
	pipeline.KindFilteredOut,
	pipeline.KindUnclassifiable,
	pipeline.KindAmountMissing,
	pipeline.KindInvalid,
	pipeline.KindBuilt,
	pipeline.KindPersisted,
	pipeline.KindPersistenceFailed,
}

type scanOptions struct {
	file    string
	dryRun  bool
	dump    bool
	migrate bool
}

// scan: run a JSON-lines message export through the pipeline in arrival order.
func scanCmd() *cobra.Command {
	opts := scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract and persist transactions from a JSON-lines message export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "JSON-lines file of {sender, body, receivedAt}")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "extract only, persist nothing")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump every outcome")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply schema migrations before scanning")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runScan(cmd *cobra.Command, opts scanOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	src, err := sms.OpenJSONLFile(opts.file)
	if err != nil {
		return err
	}
	defer src.Close()

	var enricher pipeline.Enricher
	if envConfig.EnrichmentEnabled() {
		enricher = enrichment.NewClient(enrichment.Config{
			URL:     envConfig.EnrichmentURL,
			APIKey:  envConfig.EnrichmentAPIKey,
			Model:   envConfig.EnrichmentModel,
			Timeout: envConfig.EnrichmentTimeout,
		})
	}
	p := pipeline.New(parser.NewFilter(envConfig.BankSenders), enricher, logger)

	var ingest *service.IngestService
	if opts.dryRun {
		ingest = service.NewIngestService(p, nil, 1)
	} else {
		dbStorage, err := storage.Open(envConfig)
		if err != nil {
			return err
		}
		defer dbStorage.Close()

		if opts.migrate {
			res, err := migrations.Up(dbStorage.DB, dbStorage.Driver)
			if err != nil {
				return err
			}
			logger.WithField("postMigrationVersion", res.PostMigrationVersion).Info("Backlog.scan.migrated")
		}

		delegator := operator.NewOperatorDelegator(dbStorage, 1)
		delegator.Start()
		defer delegator.Stop()
		ingest = service.NewIngestService(p, delegator, 1)
	}

	var visit func(sms.Message, pipeline.Outcome)
	if opts.dump {
		visit = func(msg sms.Message, o pipeline.Outcome) {
			spew.Fdump(out, msg, o)
		}
	}

	report, err := ingest.Backlog(ctx, src, opts.dryRun, visit)
	printReport(out, report)
	if err != nil {
		return fmt.Errorf("backlog stopped early: %w", err)
	}
	return nil
}

func printReport(w io.Writer, report service.BacklogReport) {
	total := 0
	for _, n := range report.Counts {
		total += n
	}
	fmt.Fprintf(w, "messages: %d\n", total)
	for _, k := range tallyOrder {
		if n := report.Counts[k]; n > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", k, n)
		}
	}

	buckets := report.Index.Buckets()
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintln(w, "months:")
	for _, b := range buckets {
		t := report.Index.Totals(b)
		fmt.Fprintf(w, "  %-16s income %12s  expense %12s  net %12s  (%d)\n",
			b.Label(), t.Income.StringFixed(2), t.Expense.StringFixed(2), t.Net().StringFixed(2), t.Count)
	}
}
