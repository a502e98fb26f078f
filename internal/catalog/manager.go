package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"catalog-crud/internal/client"
	"catalog-crud/internal/logger"
	"catalog-crud/internal/model"

	"go.opentelemetry.io/otel"
)

// API is the catalog REST surface the manager drives.
type API interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (model.Product, error)
	Update(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error)
	Delete(ctx context.Context, id string) (string, error)
	Seed(ctx context.Context) (client.SeedResult, error)
}

// Manager owns the client-side snapshot of the catalog. The snapshot is only
// ever rebuilt from a list response or patched from a mutation response; the
// mutex is never held across a network call.
type Manager struct {
	api API

	mu            sync.Mutex
	products      []model.Product
	loading       bool
	filter        string
	sortKey       SortKey
	pendingDelete string
	formEditID    string
	cells         map[CellKey]*cellSession
	listeners     map[int]Listener
	nextListener  int
}

var ManagerTracer = otel.Tracer("CatalogManager")

func NewManager(api API) *Manager {
	return &Manager{
		api:       api,
		products:  []model.Product{},
		cells:     make(map[CellKey]*cellSession),
		listeners: make(map[int]Listener),
	}
}

// Load replaces the snapshot with the server's collection. On failure the
// previous snapshot is kept.
func (m *Manager) Load(ctx context.Context) error {
	ctx, span := ManagerTracer.Start(ctx, "CatalogManager.Load")
	defer span.End()

	m.setLoading(true)
	defer m.setLoading(false)

	products, err := m.api.List(ctx)
	if err != nil {
		logger.Error(ctx, "Error fetching products", slog.String("error", err.Error()))
		m.notify(LevelError, "Failed to load products. Please try again later.")
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	m.mu.Lock()
	m.products = products
	m.mu.Unlock()

	m.emit(Event{Type: EventSnapshotChanged})
	return nil
}

// Create validates the draft locally and, when valid, submits it. The
// server's record (with its id and dateAdded) is appended to the snapshot.
func (m *Manager) Create(ctx context.Context, d Draft) (model.Product, error) {
	ctx, span := ManagerTracer.Start(ctx, "CatalogManager.Create")
	defer span.End()

	in, err := d.Validate()
	if err != nil {
		m.notify(LevelError, err.Error())
		return model.Product{}, err
	}

	m.setLoading(true)
	defer m.setLoading(false)

	p, err := m.api.Create(ctx, in)
	if err != nil {
		logger.Error(ctx, "Error adding product", slog.String("error", err.Error()))
		m.notify(LevelError, "Failed to add product. Please try again.")
		return model.Product{}, wrapAPIError(ErrMutationFailed, err)
	}

	m.mu.Lock()
	m.products = append(m.products, p)
	m.mu.Unlock()

	m.emit(Event{Type: EventSnapshotChanged})
	m.notify(LevelSuccess, "Product added successfully!")
	return p, nil
}

// Update sends the changed fields and replaces the snapshot entry with the
// server's merged record. Unknown ids fail without a network call.
func (m *Manager) Update(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error) {
	ctx, span := ManagerTracer.Start(ctx, "CatalogManager.Update")
	defer span.End()

	if _, ok := m.Product(id); !ok {
		return model.Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m.setLoading(true)
	defer m.setLoading(false)

	p, err := m.api.Update(ctx, id, patch)
	if err != nil {
		logger.Error(ctx, "Error updating product", slog.String("id", id), slog.String("error", err.Error()))
		m.notify(LevelError, "Failed to update product. Please try again.")
		return model.Product{}, wrapAPIError(ErrMutationFailed, err)
	}

	if m.reconcile(ctx, id, p) {
		m.notify(LevelSuccess, "Product updated successfully!")
	}
	return p, nil
}

// reconcile swaps in the server's record. It reports false, and leaves the
// snapshot alone, when id is no longer present.
func (m *Manager) reconcile(ctx context.Context, id string, p model.Product) bool {
	m.mu.Lock()
	i := m.indexOf(id)
	if i >= 0 {
		m.products[i] = p
	}
	m.mu.Unlock()

	if i < 0 {
		logger.Info(ctx, ErrStaleEditIgnored.Error(), slog.String("id", id))
		return false
	}
	m.emit(Event{Type: EventSnapshotChanged})
	return true
}

// Remove marks id for deletion. Nothing is sent until ConfirmRemove.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	if m.indexOf(id) < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.pendingDelete = id
	m.mu.Unlock()

	m.emit(Event{Type: EventPendingDeleteChanged})
	return nil
}

// CancelRemove closes the confirmation without deleting.
func (m *Manager) CancelRemove() {
	m.mu.Lock()
	m.pendingDelete = ""
	m.mu.Unlock()

	m.emit(Event{Type: EventPendingDeleteChanged})
}

func (m *Manager) PendingDelete() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingDelete
}

// ConfirmRemove deletes the pending record. The pending marker is cleared
// whether or not the call succeeds. With nothing pending it does nothing.
func (m *Manager) ConfirmRemove(ctx context.Context) error {
	ctx, span := ManagerTracer.Start(ctx, "CatalogManager.ConfirmRemove")
	defer span.End()

	m.mu.Lock()
	id := m.pendingDelete
	m.mu.Unlock()
	if id == "" {
		return nil
	}

	m.setLoading(true)
	defer m.setLoading(false)

	_, err := m.api.Delete(ctx, id)

	m.mu.Lock()
	if m.pendingDelete == id {
		m.pendingDelete = ""
	}
	if err == nil {
		if i := m.indexOf(id); i >= 0 {
			m.products = append(m.products[:i], m.products[i+1:]...)
		}
		for key, s := range m.cells {
			if key.ID == id && s.state == CellEditing {
				delete(m.cells, key)
			}
		}
		if m.formEditID == id {
			m.formEditID = ""
		}
	}
	m.mu.Unlock()
	m.emit(Event{Type: EventPendingDeleteChanged})

	if err != nil {
		logger.Error(ctx, "Error deleting product", slog.String("id", id), slog.String("error", err.Error()))
		m.notify(LevelError, "Failed to delete product. Please try again.")
		return wrapAPIError(ErrMutationFailed, err)
	}

	m.emit(Event{Type: EventSnapshotChanged})
	m.notify(LevelSuccess, "Product deleted successfully!")
	return nil
}

// Seed asks the server to replace the collection with its sample set and then
// reloads. The reload happens even when seeding fails, since the server may
// have cleared the collection before failing.
func (m *Manager) Seed(ctx context.Context) (client.SeedResult, error) {
	ctx, span := ManagerTracer.Start(ctx, "CatalogManager.Seed")
	defer span.End()

	m.setLoading(true)
	res, seedErr := m.api.Seed(ctx)
	m.setLoading(false)

	loadErr := m.Load(ctx)

	if seedErr != nil {
		logger.Error(ctx, "Error seeding database", slog.String("error", seedErr.Error()))
		m.notify(LevelError, "Failed to seed database. Please try again later.")
		return client.SeedResult{}, wrapAPIError(ErrMutationFailed, seedErr)
	}
	if loadErr != nil {
		return res, loadErr
	}

	m.notify(LevelSuccess, res.Message)
	return res, nil
}

// StartFormEdit switches the product form into edit mode for id and returns
// the values to pre-fill.
func (m *Manager) StartFormEdit(id string) (Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.formEditID = id
	return DraftFromProduct(m.products[i]), nil
}

func (m *Manager) CancelFormEdit() {
	m.mu.Lock()
	m.formEditID = ""
	m.mu.Unlock()
}

// FormEditID is the record the product form is editing, or "".
func (m *Manager) FormEditID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.formEditID
}

// Submit handles a product form submission: an update in edit mode, a create
// otherwise. Both validate the draft locally first.
func (m *Manager) Submit(ctx context.Context, d Draft) (model.Product, error) {
	id := m.FormEditID()
	if id == "" {
		return m.Create(ctx, d)
	}

	in, err := d.Validate()
	if err != nil {
		m.notify(LevelError, err.Error())
		return model.Product{}, err
	}

	p, err := m.Update(ctx, id, patchFromInput(in))
	if err != nil {
		return model.Product{}, err
	}

	m.mu.Lock()
	if m.formEditID == id {
		m.formEditID = ""
	}
	m.mu.Unlock()
	return p, nil
}

// Products returns a copy of the snapshot in server order.
func (m *Manager) Products() []model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *Manager) Product(id string) (model.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return model.Product{}, false
	}
	return m.products[i], true
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	changed := m.loading != v
	m.loading = v
	m.mu.Unlock()

	if changed {
		m.emit(Event{Type: EventLoadingChanged, Loading: v})
	}
}

// indexOf must be called with mu held.
func (m *Manager) indexOf(id string) int {
	for i := range m.products {
		if m.products[i].ID.Hex() == id {
			return i
		}
	}
	return -1
}
