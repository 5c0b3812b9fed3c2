package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/web/templates"
)

// viewFlags are the criteria flags shared by list and export.
type viewFlags struct {
	search   string
	status   string
	filters  []string
	page     int
	pageSize int
}

func (f *viewFlags) register(cmd *cobra.Command, paging bool) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive search across the table's search fields")
	cmd.Flags().StringVar(&f.status, "status", core.StatusAll, "Status to match, or \"all\"")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "Column filter as Column=op:value (repeatable)")
	if paging {
		cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page number")
		cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Rows per page (default: CONSOLE_PAGE_SIZE)")
	}
}

// apply sets the page's criteria, then moves to the requested page.
func (f *viewFlags) apply(page console.Page) error {
	filters, err := parseFilterFlags(page.Info(), f.filters)
	if err != nil {
		return err
	}

	state := page.State()
	state.Search = f.search
	state.Status = f.status
	state.Filters = filters
	if f.pageSize > 0 {
		state.PageSize = f.pageSize
	}
	page.Apply(state)
	if f.page > 1 {
		page.GoToPage(f.page)
	}
	return nil
}

// parseFilterFlags parses Column=op:value pairs. Column names match the
// table's columns case-insensitively.
func parseFilterFlags(info core.TableInfo, raw []string) ([]core.ColumnFilter, error) {
	filters := make([]core.ColumnFilter, 0, len(raw))
	for _, r := range raw {
		name, expr, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q, want Column=op:value", r)
		}
		i := slices.IndexFunc(info.Columns, func(c string) bool {
			return strings.EqualFold(c, strings.TrimSpace(name))
		})
		if i < 0 {
			return nil, fmt.Errorf("unknown column %q for %s (columns: %s)", name, info.Key, strings.Join(info.Columns, ", "))
		}
		f, ok := core.ParseColumnFilter(info.Columns[i], expr)
		if !ok {
			return nil, fmt.Errorf("invalid filter %q, want op:value (operators: eq, contains, starts, ends, gt, gte, lt, lte, in)", expr)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func newListCmd(opts *options) *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "List one page of a table",
		Long: `List one page of orders, products or customers.

Examples:
  consolectl list orders --status pending
  consolectl list products --search electronics --filter "Price=gt:100"
  consolectl list customers --page 2 --page-size 3`,
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

			grid := page.Grid()
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), grid)
			}
			return printGrid(cmd.OutOrStdout(), grid)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func printGrid(w io.Writer, grid console.Grid) error {
	if len(grid.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No %s found\n", strings.ToLower(grid.Info.Label))
		return err
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", strings.Join(grid.Info.Columns, "\t"))
	for i, row := range grid.Rows {
		cells := make([]string, 0, len(row))
		for _, col := range row {
			cells = append(cells, templates.FormatCell(col.Value))
		}
		fmt.Fprintf(tw, "%s\t%s\n", grid.IDs[i], strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	win := grid.Window
	_, err := fmt.Fprintf(w, "\nShowing %d to %d of %d results (page %d of %d)\n",
		win.First(), win.Last(), win.TotalItems, win.Page, win.TotalPages)
	return err
}
