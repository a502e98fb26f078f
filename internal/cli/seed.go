package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Replace the catalog with the sample products",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, done := rootOpts.newManager(cmd.ErrOrStderr())
			defer done()

			res, err := m.Seed(cmd.Context())
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return (&Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}).JSON(res)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products (%d loaded)\n", res.Count, m.Count())
			return err
		},
	}

	return cmd
}
