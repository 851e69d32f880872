package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/ggorockee/happyhours/internal/database"
	"github.com/ggorockee/happyhours/internal/models"
)

// ErrMissingFields is returned by Create when a required field is empty.
var ErrMissingFields = errors.New("All fields are required")

// AllCities city 필터에서 전체를 의미
const AllCities = "ALL"

type HappyHourService struct {
	db *database.DB
}

func NewHappyHourService(db *database.DB) *HappyHourService {
	return &HappyHourService{db: db}
}

// HappyHourView API 응답 행 (NULL은 빈 문자열)
type HappyHourView struct {
	ID             string `json:"happy_hours_id"`
	Name           string `json:"Name"`
	Address        string `json:"Address"`
	GoogleMarker   string `json:"Google_Marker"`
	ImageLink      string `json:"image_link"`
	OpenHours      string `json:"Open_hours"`
	HappyHourStart string `json:"Happy_hour_start"`
	HappyHourEnd   string `json:"Happy_hour_end"`
	Telephone      string `json:"Telephone"`
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
}

// CreateHappyHourRequest POST 요청 본문
type CreateHappyHourRequest struct {
	VenueName string   `json:"venueName"`
	Address   string   `json:"address"`
	Times     string   `json:"times"`
	Specials  string   `json:"specials"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// List returns every row, or only the rows of one city. City matching
// against "ALL" is case-insensitive.
func (s *HappyHourService) List(city string) ([]HappyHourView, error) {
	var rows []models.HappyHour

	query := s.db.Model(&models.HappyHour{})
	city = strings.TrimSpace(city)
	if city != "" && !strings.EqualFold(city, AllCities) {
		query = query.Where("city = ?", city)
	}

	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]HappyHourView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toView(r))
	}
	return views, nil
}

// Create inserts a single venue submitted through the API.
func (s *HappyHourService) Create(req *CreateHappyHourRequest) (string, error) {
	if strings.TrimSpace(req.VenueName) == "" || strings.TrimSpace(req.Address) == "" ||
		strings.TrimSpace(req.Times) == "" || strings.TrimSpace(req.Specials) == "" {
		return "", ErrMissingFields
	}

	row := models.HappyHour{
		ID:        uuid.NewString(),
		VenueName: strPtr(req.VenueName),
		Address:   strPtr(req.Address),
		Times:     strPtr(req.Times),
		Specials:  strPtr(req.Specials),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

// BulkCreate 여러 행을 배치로 저장
func (s *HappyHourService) BulkCreate(rows []models.HappyHour) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.CreateInBatches(rows, 100).Error
}

// Ping DB 연결 확인
func (s *HappyHourService) Ping() error {
	return s.db.Ping()
}

// venueColumns CSV 헤더 → 필드
var venueColumns = []string{
	"Name", "Description", "Address", "Google_Marker", "image_link",
	"Open_hours", "Happy_hour_start", "Happy_hour_end", "Telephone", "Remark",
}

// ParseVenueCSV reads a header-named venue export. Missing columns are
// tolerated, blank cells become NULL and rows without a name are skipped.
func ParseVenueCSV(r io.Reader, city string) ([]models.HappyHour, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := index["Name"]; !ok {
		return nil, fmt.Errorf("missing Name column (expected %s)", strings.Join(venueColumns, ", "))
	}

	var rows []models.HappyHour
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		cell := func(col string) *string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return nil
			}
			return strPtr(record[i])
		}

		name := cell("Name")
		if name == nil {
			continue
		}

		rows = append(rows, models.HappyHour{
			ID:             uuid.NewString(),
			VenueName:      name,
			Address:        cell("Address"),
			City:           strPtr(city),
			GoogleMarker:   cell("Google_Marker"),
			ImageLink:      cell("image_link"),
			OpenHours:      cell("Open_hours"),
			HappyHourStart: cell("Happy_hour_start"),
			HappyHourEnd:   cell("Happy_hour_end"),
			Specials:       joinNonEmpty(cell("Description"), cell("Remark")),
			Telephone:      cell("Telephone"),
		})
	}
	return rows, nil
}

func toView(r models.HappyHour) HappyHourView {
	return HappyHourView{
		ID:             r.ID,
		Name:           SanitizeUTF8(r.VenueName),
		Address:        SanitizeUTF8(r.Address),
		GoogleMarker:   SanitizeUTF8(r.GoogleMarker),
		ImageLink:      SanitizeUTF8(r.ImageLink),
		OpenHours:      SanitizeUTF8(r.OpenHours),
		HappyHourStart: SanitizeUTF8(r.HappyHourStart),
		HappyHourEnd:   SanitizeUTF8(r.HappyHourEnd),
		Telephone:      SanitizeUTF8(r.Telephone),
		Latitude:       formatCoord(r.Latitude),
		Longitude:      formatCoord(r.Longitude),
	}
}

// SanitizeUTF8 NULL은 빈 문자열, 잘못된 UTF-8은 ISO-8859-1로 보고 변환
func SanitizeUTF8(s *string) string {
	if s == nil {
		return ""
	}
	if utf8.ValidString(*s) {
		return *s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(*s)
	if err != nil {
		return strings.ToValidUTF8(*s, "")
	}
	return out
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func joinNonEmpty(parts ...*string) *string {
	var kept []string
	for _, p := range parts {
		if p != nil {
			kept = append(kept, *p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	joined := strings.Join(kept, " | ")
	return &joined
}
