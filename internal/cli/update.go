package cli

import (
	"errors"

	"catalog-crud/internal/catalog"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command. Only the flags given on the
// command line replace the stored values.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	given := &catalog.Draft{}

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update a product through the product form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done := rootOpts.newManager(cmd.ErrOrStderr())
			defer done()

			ctx := cmd.Context()
			if err := m.Load(ctx); err != nil {
				return err
			}
			d, err := m.StartFormEdit(args[0])
			if err != nil {
				return err
			}
			defer m.CancelFormEdit()

			fs := cmd.Flags()
			changed := false
			for flag, dst := range map[string]*string{
				"name":        &d.Name,
				"category":    &d.Category,
				"price":       &d.Price,
				"stock":       &d.Stock,
				"description": &d.Description,
				"image":       &d.ImageURL,
			} {
				if fs.Changed(flag) {
					v, _ := fs.GetString(flag)
					*dst = v
					changed = true
				}
			}
			if !changed {
				return errors.New("nothing to update: pass at least one field flag")
			}

			p, err := m.Submit(ctx, d)
			if err != nil {
				return err
			}
			return (&Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}).Product(p)
		},
	}

	draftFlags(cmd.Flags(), given)
	return cmd
}
