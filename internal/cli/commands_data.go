package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ggorockee/happyhours/internal/imagesync"
	"github.com/ggorockee/happyhours/internal/services"
)

func newImagesCommand(deps Dependencies) *cobra.Command {
	images := &cobra.Command{
		Use:   "images",
		Short: "Export venue images to object storage.",
	}
	images.AddCommand(newImagesSyncCommand(deps))
	return images
}

func newImagesSyncCommand(deps Dependencies) *cobra.Command {
	var sheet, dir, bucket, prefix string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload <row>.<ext> images named after their sheet row's venue.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bucket == "" {
				return errors.New("--bucket (or IMAGE_BUCKET) is required")
			}
			if deps.OpenS3 == nil {
				return errors.New("object storage is not configured")
			}

			f, err := os.Open(sheet)
			if err != nil {
				return fmt.Errorf("failed to open sheet: %w", err)
			}
			defer f.Close()

			items, skipped, err := imagesync.BuildItems(f, dir)
			if err != nil {
				return err
			}
			for _, s := range skipped {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", s)
			}

			client, err := deps.OpenS3(cmd.Context())
			if err != nil {
				return err
			}
			report := imagesync.NewSyncer(client, bucket, prefix).Sync(cmd.Context(), items)
			report.Skipped += len(skipped)

			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d image(s) failed", report.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet CSV export with Name and Address columns.")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory of <row>.<ext> images.")
	cmd.Flags().StringVar(&bucket, "bucket", deps.ImageBucket, "Destination bucket.")
	cmd.Flags().StringVar(&prefix, "prefix", deps.ImagePrefix, "Object key prefix.")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}

func newVenuesCommand(deps Dependencies) *cobra.Command {
	venues := &cobra.Command{
		Use:   "venues",
		Short: "Manage the happy_hours table.",
	}
	venues.AddCommand(newVenuesImportCommand(deps))
	return venues
}

func newVenuesImportCommand(deps Dependencies) *cobra.Command {
	var file, city string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load a header-named venue CSV into happy_hours.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", file, err)
			}
			defer f.Close()

			rows, err := services.ParseVenueCSV(f, city)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return errors.New("no venue rows found")
			}

			if deps.OpenDB == nil {
				return errors.New("database is not configured")
			}
			db, err := deps.OpenDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := services.NewHappyHourService(db).BulkCreate(rows); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d venues into %s\n", len(rows), city)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Venue CSV file.")
	cmd.Flags().StringVar(&city, "city", "", "City stored on every row.")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}
