package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/console/internal/console"
	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/web/templates"
)

// ErrInvalidDraft is returned by product check when validation fails.
var ErrInvalidDraft = errors.New("product draft is invalid")

// CheckOutput is the JSON result of product check.
type CheckOutput struct {
	Valid   bool             `json:"valid"`
	Product *tables.Product  `json:"product,omitempty"`
	Errors  core.FieldErrors `json:"errors,omitempty"`
}

// productFlags are the product form fields as flags.
type productFlags struct {
	id          string
	name        string
	description string
	price       float64
	stock       int
	category    string
	image       string
	sku         string
	status      string
}

var productFieldFlags = []string{"name", "description", "price", "stock", "category", "image", "sku", "status"}

func newProductCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Work with product drafts",
	}
	cmd.AddCommand(newProductCheckCmd(opts))
	return cmd
}

func newProductCheckCmd(opts *options) *cobra.Command {
	var pf productFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a product draft against the catalog",
		Long: `Validate a product draft against the product rules and the SKUs already
in the catalog. With --id the draft is checked as an edit of that product and
unset fields keep the product's values.

Run without field flags to fill in the form interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			products := svc.NewSession().Products()

			draft := products.New()
			if pf.id != "" {
				existing, ok := products.Edit(pf.id)
				if !ok {
					return fmt.Errorf("product %s: %w", pf.id, core.ErrNotFound)
				}
				draft = existing
			}

			if !anyChanged(cmd, productFieldFlags) {
				if err := runProductForm(&draft); err != nil {
					return err
				}
			} else {
				pf.applyTo(cmd, &draft)
			}

			return checkDraft(cmd, opts, products, draft, pf.id)
		},
	}

	cmd.Flags().StringVar(&pf.id, "id", "", "Check as an edit of this product")
	cmd.Flags().StringVar(&pf.name, "name", "", "Product name")
	cmd.Flags().StringVar(&pf.description, "description", "", "Description")
	cmd.Flags().Float64Var(&pf.price, "price", 0, "Price, greater than 0")
	cmd.Flags().IntVar(&pf.stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&pf.category, "category", "", "Category")
	cmd.Flags().StringVar(&pf.image, "image", "", "Image URL")
	cmd.Flags().StringVar(&pf.sku, "sku", "", "Stock keeping unit, unique across products")
	cmd.Flags().StringVar(&pf.status, "status", string(tables.ProductActive), "active or inactive")
	return cmd
}

func anyChanged(cmd *cobra.Command, names []string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

// applyTo overwrites the draft fields whose flags were set.
func (pf *productFlags) applyTo(cmd *cobra.Command, d *tables.ProductDraft) {
	set := cmd.Flags().Changed
	if set("name") {
		d.Name = pf.name
	}
	if set("description") {
		d.Description = pf.description
	}
	if set("price") {
		price := pf.price
		d.Price = &price
	}
	if set("stock") {
		stock := pf.stock
		d.Stock = &stock
	}
	if set("category") {
		d.Category = pf.category
	}
	if set("image") {
		d.Image = pf.image
	}
	if set("sku") {
		d.SKU = pf.sku
	}
	if set("status") || d.Status == "" {
		d.Status = tables.ProductStatus(pf.status)
	}
}

// runProductForm prompts for every draft field, starting from d's values.
func runProductForm(d *tables.ProductDraft) error {
	var priceStr, stockStr string
	if d.Price != nil {
		priceStr = strconv.FormatFloat(*d.Price, 'f', -1, 64)
	}
	if d.Stock != nil {
		stockStr = strconv.Itoa(*d.Stock)
	}
	status := string(d.Status)

	options := make([]huh.Option[string], 0, len(tables.ProductStatuses))
	for _, s := range tables.ProductStatuses {
		options = append(options, huh.NewOption(string(s), string(s)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product name").
				Value(&d.Name),
			huh.NewText().
				Title("Description").
				Value(&d.Description),
			huh.NewInput().
				Title("Price").
				Placeholder("0.00").
				Value(&priceStr).
				Validate(func(s string) error {
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return errors.New("price must be a number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Stock").
				Placeholder("0").
				Value(&stockStr).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return errors.New("stock must be a whole number")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Value(&d.Category),
			huh.NewInput().
				Title("SKU").
				Placeholder("WH-001").
				Value(&d.SKU),
			huh.NewInput().
				Title("Image URL").
				Value(&d.Image),
			huh.NewSelect[string]().
				Title("Status").
				Options(options...).
				Value(&status),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
	stock, _ := strconv.Atoi(strings.TrimSpace(stockStr))
	d.Price = &price
	d.Stock = &stock
	d.Status = tables.ProductStatus(status)
	return nil
}

// checkDraft submits the draft to a throwaway session and reports the outcome.
func checkDraft(cmd *cobra.Command, opts *options, products *console.ProductsPage, draft tables.ProductDraft, editingID string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := products.Submit(ctx, draft, editingID)
	var fieldErrs core.FieldErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		return err
	}

	out := CheckOutput{Valid: err == nil, Errors: result.Errors}
	if out.Valid {
		out.Product = &result.Product
	}

	w := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := writeJSON(w, out); err != nil {
			return err
		}
	} else if out.Valid {
		p := result.Product
		fmt.Fprintf(w, "Product is valid: %s (%s) %s, %d in stock, %s\n",
			p.Name, p.SKU, templates.FormatMoney(p.Price), p.Stock, p.Status)
	} else {
		tw := newTable(w)
		fmt.Fprintln(tw, "FIELD\tERROR")
		for _, field := range out.Errors.Fields() {
			fmt.Fprintf(tw, "%s\t%s\n", field, out.Errors[field])
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !out.Valid {
		return ErrInvalidDraft
	}
	return nil
}
