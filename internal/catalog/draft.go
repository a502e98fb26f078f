package catalog

import (
	"math"
	"strconv"
	"strings"

	"catalog-crud/internal/model"
	"catalog-crud/internal/validation"
)

// Draft holds form values as typed by the user.
type Draft struct {
	Name        string
	Category    string
	Price       string
	Stock       string
	Description string
	ImageURL    string
}

// DraftFromProduct pre-fills a form from a stored record.
func DraftFromProduct(p model.Product) Draft {
	return Draft{
		Name:        p.Name,
		Category:    p.Category,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(p.Stock),
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

// Validate applies the field rules and returns the create body. The first
// failing field is reported as a *FieldError.
func (d Draft) Validate() (model.ProductInput, error) {
	name := strings.TrimSpace(d.Name)
	category := strings.TrimSpace(d.Category)
	description := strings.TrimSpace(d.Description)

	for _, f := range []struct{ field, value string }{
		{"name", name},
		{"category", category},
		{"description", description},
	} {
		if f.value == "" {
			return model.ProductInput{}, &FieldError{Field: f.field, Message: f.field + " is required"}
		}
	}

	price, ok := parsePrice(d.Price)
	if !ok {
		return model.ProductInput{}, &FieldError{Field: "price", Message: "Please enter a valid price"}
	}
	stock, ok := parseStock(d.Stock)
	if !ok {
		return model.ProductInput{}, &FieldError{Field: "stock", Message: "Please enter a valid stock quantity"}
	}

	in := model.ProductInput{
		Name:        &name,
		Category:    &category,
		Price:       &price,
		Stock:       &stock,
		Description: &description,
	}
	// Absent image lets the server apply its placeholder.
	if img := strings.TrimSpace(d.ImageURL); img != "" {
		in.ImageURL = &img
	}

	if fields := validation.Struct(in); len(fields) > 0 {
		return model.ProductInput{}, &FieldError{Field: fields[0].Field, Message: fields[0].Message}
	}
	return in, nil
}

// patchFromInput turns a validated create body into a full update.
func patchFromInput(in model.ProductInput) model.ProductPatch {
	return model.ProductPatch{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}

func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func parseStock(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
