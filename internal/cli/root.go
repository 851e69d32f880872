package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "happyhours-admin",
		Short:         "Manage verified businesses, uploads and venue data.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(newImportCommand(deps))
	root.AddCommand(newHistoryCommand(deps))
	root.AddCommand(newClearCommand(deps))
	root.AddCommand(newSearchCommand(deps))
	root.AddCommand(newImagesCommand(deps))
	root.AddCommand(newVenuesCommand(deps))

	return root
}
