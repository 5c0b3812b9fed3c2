package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/web/templates"
)

func newOrderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect orders",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show an order with its items and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			details, ok := svc.NewSession().Orders().Details(args[0])
			if !ok {
				return fmt.Errorf("order %s: %w", args[0], core.ErrNotFound)
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, details)
			}

			o := details.Order
			fmt.Fprintf(w, "Order %s\n", o.ID)
			fmt.Fprintf(w, "Customer: %s <%s>\n", o.CustomerName, o.CustomerEmail)
			fmt.Fprintf(w, "Status:   %s\n", o.Status)
			fmt.Fprintf(w, "Payment:  %s\n", o.PaymentMethod.Label())
			fmt.Fprintf(w, "Ship to:  %s\n", o.ShippingAddress)
			fmt.Fprintf(w, "Placed:   %s\n\n", core.FormatValue(o.CreatedAt))

			tw := newTable(w)
			fmt.Fprintln(tw, "ITEM\tQTY\tPRICE\tTOTAL")
			for _, item := range o.Items {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.ProductName, item.Quantity,
					templates.FormatMoney(item.Price), templates.FormatMoney(item.Total()))
			}
			fmt.Fprintln(tw, "\t\t\t")
			t := details.Totals
			fmt.Fprintf(tw, "\t\tSubtotal\t%s\n", templates.FormatMoney(t.Subtotal))
			fmt.Fprintf(tw, "\t\tTax\t%s\n", templates.FormatMoney(t.Tax))
			fmt.Fprintf(tw, "\t\tShipping\t%s\n", templates.FormatMoney(t.Shipping))
			fmt.Fprintf(tw, "\t\tTotal\t%s\n", templates.FormatMoney(t.Total))
			return tw.Flush()
		},
	})
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			stats := svc.Dashboard()

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, stats)
			}

			counts := svc.Counts()
			tw := newTable(w)
			fmt.Fprintf(tw, "Orders\t%s\n", templates.FormatCell(counts["orders"]))
			fmt.Fprintf(tw, "Pending orders\t%s\n", templates.FormatCell(stats.PendingOrders))
			fmt.Fprintf(tw, "Products\t%s\n", templates.FormatCell(counts["products"]))
			fmt.Fprintf(tw, "Customers\t%s\n", templates.FormatCell(stats.Customers.Total))
			fmt.Fprintf(tw, "Active customers\t%s\n", templates.FormatCell(stats.Customers.Active))
			fmt.Fprintf(tw, "Total revenue\t%s\n", templates.FormatMoney(stats.Customers.TotalRevenue))
			fmt.Fprintf(tw, "Avg order value\t%s\n", templates.FormatMoney(stats.Customers.AvgOrderValue))
			return tw.Flush()
		},
	}
}
