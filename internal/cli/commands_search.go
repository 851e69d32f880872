package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ggorockee/happyhours/internal/aggregator"
	"github.com/ggorockee/happyhours/internal/verified"
	"github.com/ggorockee/happyhours/pkg/models"
)

func newSearchCommand(deps Dependencies) *cobra.Command {
	var q aggregator.Query
	var category string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search verified and nearby places around a point.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !finiteIn(q.Latitude, 90) || !finiteIn(q.Longitude, 180) {
				return fmt.Errorf("invalid coordinates %v,%v", q.Latitude, q.Longitude)
			}
			q.Category = models.Category(category)
			if q.Category != "" && q.Category != models.CategoryAll && !q.Category.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}

			agg := aggregator.New(verified.NewRepository(deps.Store), deps.Places, deps.Telemetry)
			results, err := agg.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().Float64Var(&q.Latitude, "lat", 0, "Latitude (required).")
	cmd.Flags().Float64Var(&q.Longitude, "lng", 0, "Longitude (required).")
	cmd.Flags().IntVar(&q.Radius, "radius", aggregator.DefaultRadius, "Search radius in meters.")
	cmd.Flags().StringVar(&category, "category", "", "Category filter.")
	cmd.Flags().StringVar(&q.Text, "q", "", "Text filter on name and description.")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func finiteIn(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= limit
}
