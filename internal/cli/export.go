package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ExportOutput is the JSON result of an export.
type ExportOutput struct {
	Table string `json:"table"`
	File  string `json:"file,omitempty"`
	Rows  int    `json:"rows"`
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		flags  viewFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export <table>",
		Short: "Export every record matching the filters to CSV",
		Long: `Export every record matching the filters to a CSV file named
<table>-<YYYY-MM-DD>.csv. Nothing is written when no record matches.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"orders", "products", "customers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			page, err := svc.NewSession().Page(args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(page); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			file, ok, err := page.Export(ctx)
			if err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}

			out := ExportOutput{Table: page.Info().Key}
			if ok {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
				out.File = filepath.Join(outDir, file.Name)
				out.Rows = file.Rows
				if err := os.WriteFile(out.File, file.Data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
			}

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to export: no %s match the filters\n", out.Table)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", out.Rows, out.File)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write the CSV file to")
	return cmd
}
