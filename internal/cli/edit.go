package cli

import (
	"fmt"

	"catalog-crud/internal/catalog"

	"github.com/spf13/cobra"
)

// NewEditCommand creates the edit command, a single-cell inline edit.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id> <field> <value>",
		Short: "Edit one field of a product in place",
		Long: `Edit one field of a product in place.

Field is one of name, category, price, stock or description. An empty or
unchanged value leaves the product as it is.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done := rootOpts.newManager(cmd.ErrOrStderr())
			defer done()

			ctx := cmd.Context()
			if err := m.Load(ctx); err != nil {
				return err
			}

			key := catalog.CellKey{ID: args[0], Field: catalog.Field(args[1])}
			if _, err := m.BeginEdit(key); err != nil {
				return err
			}
			res, err := m.CommitEdit(ctx, key, args[2])
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				p := &Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return p.JSON(map[string]any{"field": key.Field, "value": res.Display, "saved": res.Saved})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key.Field, res.Display)
			return err
		},
	}

	return cmd
}
