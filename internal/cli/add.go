package cli

import (
	"catalog-crud/internal/catalog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// draftFlags binds the product form fields. Values stay strings so the
// manager's validation sees exactly what was typed.
func draftFlags(fs *pflag.FlagSet, d *catalog.Draft) {
	fs.StringVar(&d.Name, "name", "", "product name")
	fs.StringVar(&d.Category, "category", "", "product category")
	fs.StringVar(&d.Price, "price", "", "unit price, greater than 0")
	fs.StringVar(&d.Stock, "stock", "", "units in stock, 0 or more")
	fs.StringVar(&d.Description, "description", "", "product description")
	fs.StringVar(&d.ImageURL, "image", "", "image URL (a placeholder is used when empty)")
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	d := &catalog.Draft{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Example: `  catalog-client add --name "Desk Lamp" --category Home --price 24.99 \
    --stock 12 --description "Adjustable LED lamp"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done := rootOpts.newManager(cmd.ErrOrStderr())
			defer done()

			p, err := m.Create(cmd.Context(), *d)
			if err != nil {
				return err
			}
			return (&Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}).Product(p)
		},
	}

	draftFlags(cmd.Flags(), d)
	return cmd
}
