package console

import (
	"context"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/logging"
)

// Page is the table-agnostic surface of an entity page, used by the
// dashboard, the generic list endpoints and the CLI.
type Page interface {
	Info() core.TableInfo
	State() core.PageState
	Apply(core.PageState)
	GoToPage(n int)
	Grid() Grid
	Export(ctx context.Context) (core.File, bool, error)
	Total() int
}

// Grid is a page's current view projected onto its export columns.
type Grid struct {
	Info      core.TableInfo   `json:"info"`
	IDs       []string         `json:"ids"`
	Rows      []core.ExportRow `json:"rows"`
	Window    core.PageWindow  `json:"window"`
	Pages     []core.PageLink  `json:"pages"`
	State     core.PageState   `json:"state"`
	CanExport bool             `json:"canExport"`
}

// table is the shared implementation behind each entity page.
type table[T any] struct {
	*core.Controller[T]

	svc      *Service
	queue    *core.NotificationQueue
	idOf     func(T) string
	count    func() int
	exported string // success message shown after an export
}

func newTable[T any](svc *Service, queue *core.NotificationQueue, def core.TableDefinition[T], source func() []T, count func() int, idOf func(T) string, exported string) *table[T] {
	return &table[T]{
		Controller: core.NewController(def, source, svc.pageSize),
		svc:        svc,
		queue:      queue,
		idOf:       idOf,
		count:      count,
		exported:   exported,
	}
}

// Info returns the table's display information.
func (t *table[T]) Info() core.TableInfo {
	return t.Definition().Info
}

// Total returns the number of records in the store, ignoring criteria.
func (t *table[T]) Total() int {
	return t.count()
}

// Grid recomputes the view and projects each visible record.
func (t *table[T]) Grid() Grid {
	view := t.View()
	def := t.Definition()

	g := Grid{
		Info:      def.Info,
		IDs:       make([]string, 0, len(view.Items)),
		Rows:      make([]core.ExportRow, 0, len(view.Items)),
		Window:    view.Window,
		Pages:     view.Pages,
		State:     view.State,
		CanExport: view.CanExport,
	}
	for _, item := range view.Items {
		g.IDs = append(g.IDs, t.idOf(item))
		g.Rows = append(g.Rows, def.Export(item))
	}
	return g
}

// Export renders the filtered records as CSV. Nothing is produced, and no
// notification shown, when no record matches.
func (t *table[T]) Export(ctx context.Context) (core.File, bool, error) {
	info := t.Info()
	logger := logging.WithFields(ctx, "table", info.Key, "action", core.ActionExport)

	file, ok, err := t.svc.exporter.Export(t.ExportRows(), info.ExportName)
	if err != nil {
		logger.Error("export failed", "error", err)
		t.queue.Error(core.MapError(err).Message)
		return core.File{}, false, err
	}
	if !ok {
		logger.Debug("export skipped, no matching rows")
		return core.File{}, false, nil
	}

	t.svc.Audit.Record(ctx, core.AuditLogParams{
		Action:       core.ActionExport,
		TableKey:     info.Key,
		NewValue:     file.Name,
		RowsAffected: file.Rows,
	})
	logger.Info("export completed", "file", file.Name, "rows", file.Rows)
	t.queue.Success(t.exported)
	return file, true, nil
}

// fail reports err to the user and returns it unchanged.
func (t *table[T]) fail(err error) error {
	t.queue.Error(core.MapError(err).Message)
	return err
}
