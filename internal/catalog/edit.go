package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"catalog-crud/internal/logger"
	"catalog-crud/internal/model"
)

// Field is an inline-editable column.
type Field string

const (
	FieldName        Field = "name"
	FieldCategory    Field = "category"
	FieldPrice       Field = "price"
	FieldStock       Field = "stock"
	FieldDescription Field = "description"
)

// CellKey identifies one editable cell.
type CellKey struct {
	ID    string
	Field Field
}

type CellState int

const (
	CellDisplay CellState = iota
	CellEditing
	CellSaving
)

func (s CellState) String() string {
	switch s {
	case CellEditing:
		return "editing"
	case CellSaving:
		return "saving"
	default:
		return "display"
	}
}

type cellSession struct {
	state    CellState
	rollback string
}

// CellResult is the cell after a commit or cancel.
type CellResult struct {
	Display  string
	State    CellState
	Saved    bool
	Reverted bool
}

// DisplayValue renders a field the way the table shows it.
func DisplayValue(p model.Product, f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldCategory:
		return p.Category
	case FieldPrice:
		return strconv.FormatFloat(p.Price, 'f', 2, 64)
	case FieldStock:
		return strconv.Itoa(p.Stock)
	case FieldDescription:
		return p.Description
	default:
		return ""
	}
}

func validField(f Field) bool {
	switch f {
	case FieldName, FieldCategory, FieldPrice, FieldStock, FieldDescription:
		return true
	}
	return false
}

// BeginEdit moves the cell to Editing and captures the displayed value for
// rollback, which it returns. Calling it again for a cell already in Editing
// or Saving changes nothing.
func (m *Manager) BeginEdit(key CellKey) (string, error) {
	if !validField(key.Field) {
		return "", &FieldError{Field: string(key.Field), Message: fmt.Sprintf("%s is not editable", key.Field)}
	}

	m.mu.Lock()
	if s, ok := m.cells[key]; ok {
		m.mu.Unlock()
		return s.rollback, nil
	}
	i := m.indexOf(key.ID)
	if i < 0 {
		m.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrNotFound, key.ID)
	}
	display := DisplayValue(m.products[i], key.Field)
	m.cells[key] = &cellSession{state: CellEditing, rollback: display}
	m.mu.Unlock()

	m.emit(Event{Type: EventCellChanged, Cell: key})
	return display, nil
}

// CellState reports where the cell is in its edit cycle.
func (m *Manager) CellState(key CellKey) CellState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.cells[key]; ok {
		return s.state
	}
	return CellDisplay
}

// CancelEdit reverts the cell to its rollback value without a network call.
func (m *Manager) CancelEdit(key CellKey) CellResult {
	m.mu.Lock()
	s, ok := m.cells[key]
	if !ok || s.state != CellEditing {
		res := CellResult{Display: m.currentDisplay(key), State: m.cellStateLocked(key)}
		m.mu.Unlock()
		return res
	}
	delete(m.cells, key)
	m.mu.Unlock()

	m.emit(Event{Type: EventCellChanged, Cell: key})
	return CellResult{Display: s.rollback, State: CellDisplay, Reverted: true}
}

// CommitEdit ends an edit with the typed value. Empty or unchanged input and
// numeric input that fails validation revert without a network call. A valid
// change is sent as a single-field update and the whole record is replaced
// by the server's response; on failure the cell shows the rollback value.
func (m *Manager) CommitEdit(ctx context.Context, key CellKey, input string) (CellResult, error) {
	ctx, span := ManagerTracer.Start(ctx, "CatalogManager.CommitEdit")
	defer span.End()

	m.mu.Lock()
	s, ok := m.cells[key]
	if !ok || s.state != CellEditing {
		// Saving already, or never started: a second commit (blur after
		// enter) is ignored.
		res := CellResult{Display: m.currentDisplay(key), State: m.cellStateLocked(key)}
		m.mu.Unlock()
		return res, nil
	}
	rollback := s.rollback
	value := strings.TrimSpace(input)

	if value == "" || value == rollback {
		delete(m.cells, key)
		m.mu.Unlock()
		m.emit(Event{Type: EventCellChanged, Cell: key})
		return CellResult{Display: rollback, State: CellDisplay}, nil
	}

	patch, ferr := singleFieldPatch(key.Field, value)
	if ferr != nil {
		delete(m.cells, key)
		m.mu.Unlock()
		m.emit(Event{Type: EventCellChanged, Cell: key})
		m.notify(LevelError, ferr.Message)
		return CellResult{Display: rollback, State: CellDisplay, Reverted: true}, ferr
	}

	s.state = CellSaving
	m.mu.Unlock()
	m.emit(Event{Type: EventCellChanged, Cell: key})
	m.setLoading(true)

	p, err := m.api.Update(ctx, key.ID, patch)

	m.setLoading(false)
	m.mu.Lock()
	delete(m.cells, key)
	m.mu.Unlock()
	m.emit(Event{Type: EventCellChanged, Cell: key})

	if err != nil {
		logger.Error(ctx, "Error updating product", slog.String("id", key.ID), slog.String("field", string(key.Field)), slog.String("error", err.Error()))
		m.notify(LevelError, "Failed to update product. Please try again.")
		return CellResult{Display: rollback, State: CellDisplay, Reverted: true}, wrapAPIError(ErrMutationFailed, err)
	}

	if !m.reconcile(ctx, key.ID, p) {
		return CellResult{Display: DisplayValue(p, key.Field), State: CellDisplay}, nil
	}
	m.notify(LevelSuccess, fieldLabel(key.Field)+" updated successfully!")
	return CellResult{Display: DisplayValue(p, key.Field), State: CellDisplay, Saved: true}, nil
}

// cellStateLocked must be called with mu held.
func (m *Manager) cellStateLocked(key CellKey) CellState {
	if s, ok := m.cells[key]; ok {
		return s.state
	}
	return CellDisplay
}

// currentDisplay must be called with mu held.
func (m *Manager) currentDisplay(key CellKey) string {
	if s, ok := m.cells[key]; ok {
		return s.rollback
	}
	if i := m.indexOf(key.ID); i >= 0 {
		return DisplayValue(m.products[i], key.Field)
	}
	return ""
}

func singleFieldPatch(f Field, value string) (model.ProductPatch, *FieldError) {
	switch f {
	case FieldPrice:
		v, ok := parsePrice(value)
		if !ok {
			return model.ProductPatch{}, &FieldError{Field: string(f), Message: "Please enter a valid price"}
		}
		return model.ProductPatch{Price: &v}, nil
	case FieldStock:
		v, ok := parseStock(value)
		if !ok {
			return model.ProductPatch{}, &FieldError{Field: string(f), Message: "Please enter a valid stock quantity"}
		}
		return model.ProductPatch{Stock: &v}, nil
	case FieldName:
		return model.ProductPatch{Name: &value}, nil
	case FieldCategory:
		return model.ProductPatch{Category: &value}, nil
	case FieldDescription:
		return model.ProductPatch{Description: &value}, nil
	}
	return model.ProductPatch{}, &FieldError{Field: string(f), Message: fmt.Sprintf("%s is not editable", f)}
}

func fieldLabel(f Field) string {
	s := string(f)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
