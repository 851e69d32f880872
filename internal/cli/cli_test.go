package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ggorockee/happyhours/internal/extractor"
	"github.com/ggorockee/happyhours/internal/imagesync"
	"github.com/ggorockee/happyhours/internal/kvstore"
	"github.com/ggorockee/happyhours/internal/verified"
	"github.com/ggorockee/happyhours/pkg/models"
)

const sheet = "Name,Description,Address\n" +
	"Sky Lounge,,Nariman Point, Mumbai\n" +
	"Kala Cafe,,Colaba, Mumbai\n"

func testDeps(store kvstore.Store) Dependencies {
	return Dependencies{
		Store:         store,
		Regions:       extractor.DefaultRegions(),
		DefaultRegion: "mumbai",
	}
}

func run(t *testing.T, deps Dependencies, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	code := 0
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		stderr.WriteString(err.Error())
		code = 1
	}
	return code, stdout.String(), stderr.String()
}

func TestImportHistoryClear(t *testing.T) {
	store := kvstore.NewMemory()
	deps := testDeps(store)

	code, out, errOut := run(t, deps, sheet, "import")
	if code != 0 {
		t.Fatalf("import failed: %s", errOut)
	}
	if !strings.Contains(out, "total=2 processed=2 errors=0") {
		t.Errorf("Unexpected import output %q", out)
	}

	records, err := verified.NewRepository(store).List(context.Background())
	if err != nil || len(records) != 2 {
		t.Fatalf("Expected 2 stored records, got %d (%v)", len(records), err)
	}

	_, out, _ = run(t, deps, "", "history")
	var history []models.UploadHistoryEntry
	if err := json.Unmarshal([]byte(out), &history); err != nil || len(history) != 1 {
		t.Fatalf("Expected 1 history entry, got %s", out)
	}

	if code, _, _ := run(t, deps, "", "clear"); code != 0 {
		t.Fatal("clear failed")
	}
	records, _ = verified.NewRepository(store).List(context.Background())
	if len(records) != 0 {
		t.Errorf("Expected no records after clear, got %d", len(records))
	}
}

func TestImportFromFileWithUnknownRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		t.Fatal(err)
	}

	deps := testDeps(kvstore.NewMemory())
	if code, _, errOut := run(t, deps, "", "import", "--file", path, "--region", "atlantis"); code == 0 || !strings.Contains(errOut, "unknown region") {
		t.Errorf("Expected unknown region error, got code=%d %q", code, errOut)
	}
	if code, _, errOut := run(t, deps, "", "import", "--file", path, "--region", "BANGKOK"); code != 0 {
		t.Errorf("Bangkok import failed: %s", errOut)
	}
}

func TestSearchCommand(t *testing.T) {
	store := kvstore.NewMemory()
	deps := testDeps(store)
	run(t, deps, sheet, "import")

	code, out, errOut := run(t, deps, "", "search", "--lat", "19.07", "--lng", "72.87", "--radius", "200000", "--category", "Cafe")
	if code != 0 {
		t.Fatalf("search failed: %s", errOut)
	}
	var results []models.BusinessRecord
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Name != "Kala Cafe" {
		t.Errorf("Unexpected results %s", out)
	}

	if code, _, _ := run(t, deps, "", "search", "--lat", "1", "--lng", "1", "--category", "Nightclub"); code == 0 {
		t.Error("Expected unknown category to fail")
	}
	if code, _, errOut := run(t, deps, "", "search", "--lat", "NaN", "--lng", "1"); code == 0 || !strings.Contains(errOut, "invalid coordinates") {
		t.Errorf("Expected NaN latitude to fail, got code=%d %q", code, errOut)
	}
	if code, _, _ := run(t, deps, "", "search", "--lat", "1"); code == 0 {
		t.Error("Expected missing --lng to fail")
	}
}

type memoryS3 struct {
	keys map[string]bool
}

func (m *memoryS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.keys[*in.Key] {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &s3types.NotFound{}
}

func (m *memoryS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.keys[*in.Key] = true
	return &s3.PutObjectOutput{}, nil
}

func TestImagesSync(t *testing.T) {
	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "sheet.csv")
	_ = os.WriteFile(sheetPath, []byte("Name,Address\nSky Bar,Colaba\n"), 0o644)
	imgDir := filepath.Join(dir, "images")
	_ = os.Mkdir(imgDir, 0o755)
	_ = os.WriteFile(filepath.Join(imgDir, "2.png"), []byte("png"), 0o644)
	_ = os.WriteFile(filepath.Join(imgDir, "1.png"), []byte("header"), 0o644)

	fake := &memoryS3{keys: map[string]bool{}}
	deps := testDeps(kvstore.NewMemory())
	deps.ImagePrefix = "hh/"
	deps.OpenS3 = func(context.Context) (imagesync.S3API, error) { return fake, nil }

	code, out, errOut := run(t, deps, "", "images", "sync", "--sheet", sheetPath, "--dir", imgDir, "--bucket", "b")
	if code != 0 {
		t.Fatalf("images sync failed: %s", errOut)
	}
	var report imagesync.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatal(err)
	}
	if report.Uploaded != 1 || report.Skipped != 1 || !fake.keys["hh/Sky Bar - Colaba.png"] {
		t.Errorf("Unexpected report %+v keys=%v", report, fake.keys)
	}

	if code, _, _ := run(t, deps, "", "images", "sync", "--sheet", sheetPath, "--dir", imgDir); code == 0 {
		t.Error("Expected missing bucket to fail")
	}
}

func TestVenuesImportWithoutDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venues.csv")
	_ = os.WriteFile(path, []byte("Name,Address\nToit,Indiranagar\n"), 0o644)

	code, _, errOut := run(t, testDeps(kvstore.NewMemory()), "", "venues", "import", "--file", path, "--city", "Bengaluru")
	if code == 0 || !strings.Contains(errOut, "database is not configured") {
		t.Errorf("Expected database error, got code=%d %q", code, errOut)
	}
}
