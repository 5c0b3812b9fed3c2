package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
	"github.com/JonMunkholm/console/internal/logging"
)

// Notification text shown by the products page.
const (
	msgProductCreated  = "Product created successfully!"
	msgProductUpdated  = "Product updated successfully!"
	msgProductDeleted  = "Product deleted successfully!"
	msgProductsExport  = "Products exported successfully!"
	msgFixFormErrors   = "Please fix the form errors"
	msgProductNotFound = "Product not found"
)

// ProductsPage lists the catalog and handles the add/edit form.
type ProductsPage struct {
	*table[tables.Product]
}

func newProductsPage(svc *Service, queue *core.NotificationQueue) *ProductsPage {
	return &ProductsPage{newTable(svc, queue,
		tables.ProductDefinition(),
		svc.Products.List,
		svc.Products.Count,
		func(p tables.Product) string { return p.ID },
		msgProductsExport,
	)}
}

// SubmitResult is the outcome of a product form submission.
type SubmitResult struct {
	Product tables.Product   `json:"product"`
	Created bool             `json:"created"`
	Errors  core.FieldErrors `json:"errors,omitempty"`
}

// New returns the blank add-product form.
func (p *ProductsPage) New() tables.ProductDraft {
	return tables.NewProductDraft()
}

// Edit returns the form pre-filled from product id.
func (p *ProductsPage) Edit(id string) (tables.ProductDraft, bool) {
	product, ok := p.svc.Products.Get(id)
	if !ok {
		return tables.ProductDraft{}, false
	}
	return tables.DraftFromProduct(product), true
}

// Submit validates draft and creates a product, or updates product editingID
// when it is non-empty. Invalid drafts leave the store untouched and return
// the field errors both in the result and as the error. Submissions are
// serialized across sessions, so two drafts can never both claim one SKU.
func (p *ProductsPage) Submit(ctx context.Context, draft tables.ProductDraft, editingID string) (SubmitResult, error) {
	draft = draft.Normalize()

	p.svc.productWrites.Lock()
	defer p.svc.productWrites.Unlock()

	if errs := draft.Validate(p.svc.Products.List(), editingID); !errs.Valid() {
		p.queue.Error(msgFixFormErrors)
		return SubmitResult{Errors: errs}, errs
	}

	logger := logging.WithFields(ctx, "table", tables.ProductsInfo.Key)

	if editingID == "" {
		product := p.svc.Products.Create(draft.Build())
		p.svc.Audit.Record(ctx, core.AuditLogParams{
			Action:       core.ActionCreate,
			TableKey:     tables.ProductsInfo.Key,
			RowKey:       product.ID,
			NewValue:     product.SKU,
			RowsAffected: 1,
		})
		logger.Info("product created", "id", product.ID, "action", core.ActionCreate, "sku", product.SKU)
		p.queue.Success(msgProductCreated)
		return SubmitResult{Product: product, Created: true}, nil
	}

	before, ok := p.svc.Products.Get(editingID)
	if !ok {
		p.queue.Error(msgProductNotFound)
		return SubmitResult{}, fmt.Errorf("product %s: %w", editingID, core.ErrNotFound)
	}

	product, ok := p.svc.Products.Update(editingID, draft.ApplyTo)
	if !ok {
		p.queue.Error(msgProductNotFound)
		return SubmitResult{}, fmt.Errorf("product %s: %w", editingID, core.ErrNotFound)
	}

	p.svc.Audit.Record(ctx, core.AuditLogParams{
		Action:       core.ActionUpdate,
		TableKey:     tables.ProductsInfo.Key,
		RowKey:       product.ID,
		ColumnName:   strings.Join(changedProductFields(before, product), ","),
		OldValue:     before.SKU,
		NewValue:     product.SKU,
		RowsAffected: 1,
	})
	logger.Info("product updated", "id", product.ID, "action", core.ActionUpdate)
	p.queue.Success(msgProductUpdated)
	return SubmitResult{Product: product}, nil
}

// Delete removes product id. The success notification is shown only when a
// product was actually removed.
func (p *ProductsPage) Delete(ctx context.Context, id string) bool {
	before, ok := p.svc.Products.Get(id)
	if !ok || !p.svc.Products.Delete(id) {
		return false
	}

	p.svc.Audit.Record(ctx, core.AuditLogParams{
		Action:       core.ActionDelete,
		TableKey:     tables.ProductsInfo.Key,
		RowKey:       id,
		OldValue:     before.SKU,
		RowsAffected: 1,
	})
	logging.WithFields(ctx, "table", tables.ProductsInfo.Key).
		Info("product deleted", "id", id, "action", core.ActionDelete)
	p.queue.Success(msgProductDeleted)
	return true
}

// changedProductFields lists the form fields that differ between a and b.
func changedProductFields(a, b tables.Product) []string {
	var fields []string
	diff := func(name string, changed bool) {
		if changed {
			fields = append(fields, name)
		}
	}
	diff("name", a.Name != b.Name)
	diff("description", a.Description != b.Description)
	diff("price", a.Price != b.Price)
	diff("stock", a.Stock != b.Stock)
	diff("category", a.Category != b.Category)
	diff("image", a.Image != b.Image)
	diff("sku", a.SKU != b.SKU)
	diff("status", a.Status != b.Status)
	return fields
}
