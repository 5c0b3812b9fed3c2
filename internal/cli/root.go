// Package cli implements consolectl, a command-line front end to the console
// record engine. Each invocation loads the seed dataset into a fresh service,
// so commands read and validate but never persist changes.
package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/console/internal/config"
	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/logging"
	"github.com/JonMunkholm/console/internal/seed"
)

// Version is injected during build.
var Version = "dev"

// options holds the persistent flags shared by every subcommand.
type options struct {
	seedFile   string
	jsonOutput bool
	verbose    bool
}

// Execute runs the root command and exits non-zero on error.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the consolectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "consolectl",
		Short: "consolectl inspects the admin console's orders, products and customers",
		Long: `consolectl runs the console record engine against a seed dataset.

It lists and searches tables, exports filtered views to CSV, shows order
totals and checks product drafts against the validation rules.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))
		},
	}

	root.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "YAML dataset to load (default: SEED_FILE or the embedded dataset)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newListCmd(opts),
		newExportCmd(opts),
		newProductCmd(opts),
		newOrderCmd(opts),
		newStatsCmd(opts),
	)
	return root
}

// service loads configuration and the seed dataset into a new service.
func (o *options) service() (*console.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	ds, err := seed.Load(cmp.Or(o.seedFile, cfg.Seed.File))
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	svc := console.NewService(
		console.WithPageSize(cfg.Console.PageSize),
		console.WithPricing(tables.Pricing{
			TaxRate:     cfg.Console.TaxRate,
			ShippingFee: cfg.Console.ShippingFee,
		}),
	)
	if err := svc.Load(ds); err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "counts", svc.Counts())
	return svc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
