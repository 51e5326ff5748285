package models

import (
	"time"
)

// Holiday - нерабочий день производственного календаря
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;uniqueIndex" json:"date"`
	Year      int       `gorm:"index" json:"year"`
	Month     int       `gorm:"index" json:"month"`
	Day       int       `json:"day"`
	Moved     bool      `json:"moved"`                                 // перенесенный выходной
	Weekend   bool      `gorm:"not null;default:false" json:"weekend"` // обычный выходной, не праздник
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
