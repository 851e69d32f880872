package models

import "time"

// Category 업소 카테고리 (고정 집합)
type Category string

const (
	CategoryRestaurant     Category = "Restaurant"
	CategoryBarRestaurant  Category = "Bar & Restaurant"
	CategoryCafe           Category = "Cafe"
	CategorySpaWellness    Category = "Spa & Wellness"
	CategoryStreetFood     Category = "Street Food"
	CategoryMassageParlour Category = "Massage Parlour"

	// CategoryAll 검색 필터에서 "전체"를 의미 (레코드에는 저장되지 않음)
	CategoryAll Category = "All"
)

// Categories 허용되는 카테고리 목록
var Categories = []Category{
	CategoryRestaurant,
	CategoryBarRestaurant,
	CategoryCafe,
	CategorySpaWellness,
	CategoryStreetFood,
	CategoryMassageParlour,
}

// Valid 고정 집합에 속하는지 확인
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Location 좌표 + 주소
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// DiscountOffer 해피아워 할인 정보
type DiscountOffer struct {
	ID          string `json:"id"`
	BusinessID  string `json:"businessId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
	ValidFrom   string `json:"validFrom"` // HH:MM
	ValidTo     string `json:"validTo"`   // HH:MM
	IsActive    bool   `json:"isActive"`
}

// RawRow 스프레드시트 한 행의 원본 값 (열 순서 고정)
type RawRow struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Address        string `json:"address"`
	GoogleMarker   string `json:"googleMarker"`
	Picture        string `json:"picture"`
	Logo           string `json:"logo"`
	OpenHours      string `json:"openHours"`
	HappyHourStart string `json:"happyHourStart"`
	HappyHourEnd   string `json:"happyHourEnd"`
	Telephone      string `json:"telephone"`
	Remark         string `json:"remark"`
	Update         string `json:"update"`
}

// IsEmpty 모든 값이 비어있는지 확인
func (r RawRow) IsEmpty() bool {
	for _, v := range r.Values() {
		if v != "" {
			return false
		}
	}
	return true
}

// Values 열 순서대로 값 반환
func (r RawRow) Values() []string {
	return []string{
		r.Name, r.Description, r.Address, r.GoogleMarker, r.Picture, r.Logo,
		r.OpenHours, r.HappyHourStart, r.HappyHourEnd, r.Telephone, r.Remark, r.Update,
	}
}

// VerificationData 검증 레코드의 출처 정보
type VerificationData struct {
	Source       string    `json:"source"`
	VerifiedAt   time.Time `json:"verifiedAt"`
	VerifiedBy   string    `json:"verifiedBy"`
	OriginalData RawRow    `json:"originalData"`
	GoogleMarker string    `json:"googleMarker,omitempty"`
	Logo         string    `json:"logo,omitempty"`
	Telephone    string    `json:"telephone,omitempty"`
	Website      string    `json:"website,omitempty"`
	Remarks      string    `json:"remarks,omitempty"`
	LastUpdate   string    `json:"lastUpdate,omitempty"`
}

// BusinessRecord 업소 레코드
type BusinessRecord struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Image            string            `json:"image"`
	Location         Location          `json:"location"`
	Category         Category          `json:"category"`
	Rating           float64           `json:"rating"`
	CurrentDiscount  *DiscountOffer    `json:"currentDiscount,omitempty"`
	IsActive         bool              `json:"isActive"`
	IsVerified       bool              `json:"isVerified"`
	VerificationData *VerificationData `json:"verificationData,omitempty"`
}

// BusinessRef 업로드 이력에 남기는 id + 이름
type BusinessRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadSummary 업로드 요약
type UploadSummary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// UploadHistoryEntry 업로드 이력 한 건
type UploadHistoryEntry struct {
	Timestamp     time.Time     `json:"timestamp"`
	TotalRows     int           `json:"totalRows"`
	ProcessedRows int           `json:"processedRows"`
	Errors        int           `json:"errors"`
	ErrorMessages []string      `json:"errorMessages"`
	Businesses    []BusinessRef `json:"businesses"`
}
