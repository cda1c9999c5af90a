package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CourseItemType discriminates the two kinds of itinerary entries.
type CourseItemType string

const (
	CourseItemExperience CourseItemType = "experience"
	CourseItemBreak      CourseItemType = "break"
)

// CourseItem is the persisted snapshot of one itinerary entry. Experience
// items carry the room snapshot taken at generation time so a stored course
// stays renderable even if the catalog changes later. Break items carry only
// the time window.
type CourseItem struct {
	Type      CourseItemType  `json:"type"`
	RoomID    string          `json:"room_id,omitempty"`
	Room      *ExperienceRoom `json:"room,omitempty"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
}

// Course is one generated visit itinerary. Items are stored in itinerary
// order, which is chronological by construction. Aggregates are recomputed
// from the final item sequence before persistence, never trusted
// incrementally.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VisitorID string    `gorm:"index" json:"visitor_id,omitempty"`
	Hall      Hall      `gorm:"not null" json:"hall"`
	Session   int       `gorm:"not null" json:"session"`

	Items datatypes.JSONType[[]CourseItem] `gorm:"type:jsonb" swaggertype:"array,object" json:"items"`

	TotalExperiences int `gorm:"not null;default:0" json:"total_experiences"`
	TotalJoy         int `gorm:"not null;default:0" json:"total_joy"`
	TotalDurationMin int `gorm:"not null;default:0" json:"total_duration_min"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Course) TableName() string { return "courses" }
