package cli

import (
	"fmt"
	"io"
	"slices"

	"catalog-crud/internal/catalog"
	"catalog-crud/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultAPIURL = "http://localhost:3000"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL string
	Format string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the catalog client. The API
// address comes from --api, then CATALOG_API_URL, then the local default.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()
	v.SetEnvPrefix("catalog")
	v.AutomaticEnv()
	v.SetDefault("api_url", defaultAPIURL)

	cmd := &cobra.Command{
		Use:   "catalog-client",
		Short: "Manage the product catalog from the terminal",
		Long:  "A client for the catalog REST API: list, add, edit, delete and seed products.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.APIURL = v.GetString("api_url")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("api", defaultAPIURL, "catalog API base URL (env CATALOG_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	_ = v.BindPFlag("api_url", cmd.PersistentFlags().Lookup("api"))

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// newManager builds a manager against the configured API and prints its
// notifications to errOut. The returned func detaches the printer.
func (o *RootOptions) newManager(errOut io.Writer) (*catalog.Manager, func()) {
	api := client.NewCatalogClient(client.NewHTTPClient(o.APIURL, nil))
	m := catalog.NewManager(api)
	unsubscribe := m.Subscribe(func(e catalog.Event) {
		if e.Type == catalog.EventNotification {
			fmt.Fprintf(errOut, "[%s] %s\n", e.Level, e.Message)
		}
	})
	return m, unsubscribe
}
