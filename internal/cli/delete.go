package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command. It asks for confirmation on
// stdin unless --yes is set.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a product",
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
			if err := m.Remove(args[0]); err != nil {
				return err
			}

			if !yes {
				p, _ := m.Product(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q? This cannot be undone. [y/N] ", p.Name)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					m.CancelRemove()
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return err
				}
			}

			return m.ConfirmRemove(ctx)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
