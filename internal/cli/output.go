package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"catalog-crud/internal/model"
)

// Printer renders command results as a table or as JSON.
type Printer struct {
	Format string
	Writer io.Writer
}

func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Products prints the list with a footer of shown vs total.
func (p *Printer) Products(products []model.Product, total int) error {
	if p.Format == "json" {
		return p.JSON(products)
	}

	tw := tabwriter.NewWriter(p.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tADDED")
	for _, pr := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			pr.ID.Hex(), pr.Name, pr.Category, formatPrice(pr.Price), pr.Stock, pr.DateAdded.Local().Format(time.DateOnly))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.Writer, "\n%d of %d products\n", len(products), total)
	return err
}

func (p *Printer) Product(pr model.Product) error {
	if p.Format == "json" {
		return p.JSON(pr)
	}

	tw := tabwriter.NewWriter(p.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", pr.ID.Hex())
	fmt.Fprintf(tw, "Name\t%s\n", pr.Name)
	fmt.Fprintf(tw, "Category\t%s\n", pr.Category)
	fmt.Fprintf(tw, "Price\t%s\n", formatPrice(pr.Price))
	fmt.Fprintf(tw, "Stock\t%d\n", pr.Stock)
	fmt.Fprintf(tw, "Description\t%s\n", pr.Description)
	fmt.Fprintf(tw, "Image\t%s\n", pr.ImageURL)
	fmt.Fprintf(tw, "Added\t%s\n", pr.DateAdded.Local().Format(time.DateOnly))
	return tw.Flush()
}

func formatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
