package catalog

import (
	"sort"
	"strings"

	"catalog-crud/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortNone        SortKey = ""
	SortByName      SortKey = "name"
	SortByPrice     SortKey = "price"
	SortByDateAdded SortKey = "dateAdded"
)

// SetFilter sets the search term. No I/O.
func (m *Manager) SetFilter(term string) {
	m.mu.Lock()
	m.filter = term
	m.mu.Unlock()
}

// SetSort sets the sort key. Unknown keys keep snapshot order.
func (m *Manager) SetSort(key SortKey) {
	m.mu.Lock()
	m.sortKey = key
	m.mu.Unlock()
}

// View derives the filtered, sorted list from the current snapshot. It is
// recomputed on every call.
func (m *Manager) View() []model.Product {
	m.mu.Lock()
	products := make([]model.Product, len(m.products))
	copy(products, m.products)
	term, key := m.filter, m.sortKey
	m.mu.Unlock()

	return FilterAndSort(products, term, key)
}

// FilterAndSort keeps the products whose name, category or description
// contains term (case-insensitive) and orders them by key. The input slice
// is not modified.
func FilterAndSort(products []model.Product, term string, key SortKey) []model.Product {
	needle := strings.ToLower(term)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}

	switch key {
	case SortByName:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortByDateAdded:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DateAdded.After(out[j].DateAdded)
		})
	}
	return out
}
