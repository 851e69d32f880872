package models

import (
	"time"
)

// HappyHour happy_hours 테이블 한 행 (도시별 해피아워 업소)
type HappyHour struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	VenueName      *string   `gorm:"column:venue_name" json:"venueName"`
	Address        *string   `gorm:"column:address" json:"address"`
	City           *string   `gorm:"column:city;index" json:"city"`
	GoogleMarker   *string   `gorm:"column:google_marker" json:"googleMarker"`
	ImageLink      *string   `gorm:"column:image_link" json:"imageLink"`
	OpenHours      *string   `gorm:"column:open_hours" json:"openHours"`
	HappyHourStart *string   `gorm:"column:happy_hour_start" json:"happyHourStart"`
	HappyHourEnd   *string   `gorm:"column:happy_hour_end" json:"happyHourEnd"`
	Times          *string   `gorm:"column:times" json:"times"`
	Specials       *string   `gorm:"column:specials" json:"specials"`
	Telephone      *string   `gorm:"column:telephone" json:"telephone"`
	Latitude       *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude      *float64  `gorm:"column:longitude" json:"longitude"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (HappyHour) TableName() string {
	return "happy_hours"
}
