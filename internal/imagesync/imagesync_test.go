package imagesync

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	existing map[string]bool
	putErr   error
	puts     map[string]string
}

func newFakeS3(existing ...string) *fakeS3 {
	f := &fakeS3{existing: map[string]bool{}, puts: map[string]string{}}
	for _, k := range existing {
		f.existing[k] = true
	}
	return f
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.existing[*in.Key] {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &s3types.NotFound{}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, _ := io.ReadAll(in.Body)
	f.puts[*in.Key] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name, address, ext string
		want               string
	}{
		{"Sky Bar", "Marine Drive, Mumbai", ".JPG", "Sky Bar - Marine Drive, Mumbai.jpg"},
		{"  Bar/Grill ", "No: 5 \"Main\"", "", "Bar-Grill - No- 5 -Main-.jpg"},
		{"A   B", "C\tD", "png", "A B - C D.png"},
		{"Q?", "<x>|y*", ".webp", "Q- - -x--y-.webp"},
	}

	for _, tt := range tests {
		if got := FileName(tt.name, tt.address, tt.ext); got != tt.want {
			t.Errorf("FileName(%q, %q, %q) = %q, want %q", tt.name, tt.address, tt.ext, got, tt.want)
		}
	}
}

func writeImages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("img-"+n), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const sheet = "Name,Address,Image\n" +
	"Sky Bar,\"Marine Drive, Mumbai\",\n" +
	"No Address,,\n" +
	"Kala Cafe,Colaba,\n"

func TestBuildItems(t *testing.T) {
	dir := writeImages(t, "1.png", "2.jpg", "3.png", "4.jpeg", "9.jpg", "notes.txt")

	items, skipped, err := BuildItems(strings.NewReader(sheet), dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %+v", items)
	}
	if items[0].Row != 2 || items[0].FileName != "Sky Bar - Marine Drive, Mumbai.jpg" {
		t.Errorf("Unexpected first item %+v", items[0])
	}
	if items[1].Row != 4 || items[1].FileName != "Kala Cafe - Colaba.jpeg" {
		t.Errorf("Unexpected second item %+v", items[1])
	}
	// header row, row without address, row past the end
	if len(skipped) != 3 {
		t.Errorf("Expected 3 skipped images, got %v", skipped)
	}
}

func TestBuildItemsRequiresColumns(t *testing.T) {
	_, _, err := BuildItems(strings.NewReader("Title,Location\nx,y\n"), t.TempDir())
	if err == nil {
		t.Error("Expected error for missing Name/Address columns")
	}
}

func TestSync(t *testing.T) {
	dir := writeImages(t, "2.jpg", "4.png")
	items, _, err := BuildItems(strings.NewReader(sheet), dir)
	if err != nil {
		t.Fatal(err)
	}

	fake := newFakeS3("happy-hours/Kala Cafe - Colaba.png")
	report := NewSyncer(fake, "bucket", "happy-hours/").Sync(context.Background(), items)

	if report.Uploaded != 1 || report.Skipped != 1 || report.Failed != 0 {
		t.Errorf("Unexpected report %+v", report)
	}
	if got := fake.puts["happy-hours/Sky Bar - Marine Drive, Mumbai.jpg"]; got != "img-2.jpg" {
		t.Errorf("Unexpected uploaded body %q", got)
	}
}

func TestSyncFailures(t *testing.T) {
	dir := writeImages(t, "2.jpg")
	items, _, _ := BuildItems(strings.NewReader(sheet), dir)

	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	report := NewSyncer(fake, "bucket", "").Sync(context.Background(), items)

	if report.Failed != 1 || len(report.Errors) != 1 || report.Uploaded != 0 {
		t.Errorf("Unexpected report %+v", report)
	}
}
