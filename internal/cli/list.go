package cli

import (
	"fmt"
	"slices"

	"catalog-crud/internal/catalog"

	"github.com/spf13/cobra"
)

var validSortKeys = []catalog.SortKey{catalog.SortNone, catalog.SortByName, catalog.SortByPrice, catalog.SortByDateAdded}

type listOptions struct {
	filter string
	sort   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List products, optionally filtered and sorted",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "case-insensitive match on name, category or description")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "sort by name, price or dateAdded")

	return cmd
}

func runList(cmd *cobra.Command, rootOpts *RootOptions, opts *listOptions) error {
	key := catalog.SortKey(opts.sort)
	if !slices.Contains(validSortKeys, key) {
		return fmt.Errorf("invalid sort %q: must be one of name, price, dateAdded", opts.sort)
	}

	m, done := rootOpts.newManager(cmd.ErrOrStderr())
	defer done()

	ctx := cmd.Context()
	if err := m.Dispatch(ctx, catalog.LoadRequest{}); err != nil {
		return err
	}
	_ = m.Dispatch(ctx, catalog.SetFilterRequest{Term: opts.filter})
	_ = m.Dispatch(ctx, catalog.SetSortRequest{Key: key})

	p := &Printer{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	return p.Products(m.View(), m.Count())
}
