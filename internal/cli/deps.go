package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ggorockee/happyhours/internal/aggregator"
	"github.com/ggorockee/happyhours/internal/database"
	"github.com/ggorockee/happyhours/internal/extractor"
	"github.com/ggorockee/happyhours/internal/imagesync"
	"github.com/ggorockee/happyhours/internal/kvstore"
	"github.com/ggorockee/happyhours/internal/telemetry"
)

// Dependencies wires runtime services.
type Dependencies struct {
	Store         kvstore.Store
	Regions       extractor.Regions
	DefaultRegion string
	Places        aggregator.PlaceSearcher // nil when no API key
	Telemetry     *telemetry.Telemetry

	// OpenS3 / OpenDB are only called by the commands that need them.
	OpenS3      func(ctx context.Context) (imagesync.S3API, error)
	ImageBucket string
	ImagePrefix string
	OpenDB      func() (*database.DB, error)
}

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintln(stderr, msg)
		}
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
