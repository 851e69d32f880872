package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ggorockee/happyhours/internal/bookmarks"
	"github.com/ggorockee/happyhours/internal/extractor"
	"github.com/ggorockee/happyhours/internal/ingest"
	"github.com/ggorockee/happyhours/internal/verified"
)

func newImportCommand(deps Dependencies) *cobra.Command {
	var file string
	var replace bool
	var region string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV/TSV spreadsheet export as verified businesses.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if region == "" {
				region = deps.DefaultRegion
			}
			r, err := deps.Regions.Lookup(region)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}

			svc := ingest.NewService(extractor.New(r), verified.NewRepository(deps.Store), deps.Telemetry)
			result, err := svc.Import(cmd.Context(), in, ingest.Options{Replace: replace})

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "total=%d processed=%d errors=%d\n",
				result.Summary.Total, result.Summary.Processed, result.Summary.Errors)
			for _, e := range result.Errors {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Spreadsheet export to read (- for stdin).")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the stored set instead of merging by id.")
	cmd.Flags().StringVar(&region, "region", "", "Region used for coordinate synthesis (default from REGION).")
	return cmd
}

func newHistoryCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the most recent uploads, newest first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), verified.NewRepository(deps.Store).History(cmd.Context()))
		},
	}
}

func newClearCommand(deps Dependencies) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove verified businesses and upload history.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := verified.NewRepository(deps.Store).ClearAll(cmd.Context()); err != nil {
				return err
			}
			if all {
				if err := bookmarks.NewService(deps.Store).ClearAll(cmd.Context()); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also remove bookmarks and preferences.")
	return cmd
}
