// Package imagesync exports venue images from a spreadsheet export to an
// S3 compatible bucket, naming each object after the venue it belongs to.
package imagesync

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/awsclient"
	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/internal/logger"
)

const defaultExt = "jpg"

var (
	invalidChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// S3API 업로드에 필요한 S3 메서드
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client S3(R2) 클라이언트 생성
func NewS3Client(ctx context.Context, cfg *config.AWSConfig) (*s3.Client, error) {
	awsCfg, err := awsclient.LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// R2, MinIO는 path-style 주소 필요
		o.UsePathStyle = cfg.Endpoint != ""
	}), nil
}

// FileName builds "<name> - <address>.<ext>" with characters that are not
// allowed in file names replaced by "-".
func FileName(name, address, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		ext = defaultExt
	}
	base := fmt.Sprintf("%s - %s.%s", strings.TrimSpace(name), strings.TrimSpace(address), ext)
	base = invalidChars.ReplaceAllString(base, "-")
	base = whitespace.ReplaceAllString(base, " ")
	return strings.TrimSpace(base)
}

// Item 업로드 대상 이미지 하나
type Item struct {
	Row      int // 1-based sheet row
	Name     string
	Address  string
	Path     string
	FileName string
}

// Report 동기화 결과
type Report struct {
	Uploaded int      `json:"uploaded"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// BuildItems matches the images in dir (named "<row>.<ext>") against the
// sheet rows. Images for the header row, for missing rows, or for rows
// without a name or address are reported as skipped.
func BuildItems(sheet io.Reader, dir string) ([]Item, []string, error) {
	reader := csv.NewReader(sheet)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("sheet is empty")
	}

	nameCol, addrCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case "Name":
			nameCol = i
		case "Address":
			addrCol = i
		}
	}
	if nameCol < 0 || addrCol < 0 {
		return nil, nil, errors.New("required columns (Name or Address) not found")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var items []Item
	var skipped []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		row, err := strconv.Atoi(strings.TrimSuffix(entry.Name(), ext))
		if err != nil {
			continue
		}

		if row <= 1 || row > len(rows) {
			skipped = append(skipped, fmt.Sprintf("%s: no data row %d", entry.Name(), row))
			continue
		}
		record := rows[row-1]
		name, address := cell(record, nameCol), cell(record, addrCol)
		if name == "" || address == "" {
			skipped = append(skipped, fmt.Sprintf("row %d: missing Name or Address", row))
			continue
		}

		items = append(items, Item{
			Row:      row,
			Name:     name,
			Address:  address,
			Path:     filepath.Join(dir, entry.Name()),
			FileName: FileName(name, address, ext),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Row < items[j].Row })
	return items, skipped, nil
}

func cell(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Syncer 이미지 업로더
type Syncer struct {
	client S3API
	bucket string
	prefix string
	log    *zap.SugaredLogger
}

func NewSyncer(client S3API, bucket, prefix string) *Syncer {
	return &Syncer{
		client: client,
		bucket: bucket,
		prefix: prefix,
		log:    logger.GetLogger("imagesync"),
	}
}

// Key 버킷 내 객체 키
func (s *Syncer) Key(item Item) string {
	return s.prefix + item.FileName
}

// Sync uploads every item whose key does not exist yet.
func (s *Syncer) Sync(ctx context.Context, items []Item) Report {
	report := Report{Errors: []string{}}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", item.Row, err))
			continue
		}

		key := s.Key(item)
		exists, err := s.exists(ctx, key)
		if err != nil {
			s.log.Errorf("Failed to check %s: %v", key, err)
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", item.Row, err))
			continue
		}
		if exists {
			s.log.Infof("File %q already exists. Skipping.", key)
			report.Skipped++
			continue
		}

		if err := s.upload(ctx, key, item.Path); err != nil {
			s.log.Errorf("Failed to process image on row %d: %v", item.Row, err)
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", item.Row, err))
			continue
		}
		s.log.Infof("Successfully saved: %s", key)
		report.Uploaded++
	}

	return report
}

func (s *Syncer) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return false, nil
	}
	return false, fmt.Errorf("head object: %w", err)
}

func (s *Syncer) upload(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
