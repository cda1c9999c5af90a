package model

import "time"

// VisitorPreferences is the persisted planning profile for one visitor
// device. It mirrors what the companion app keeps locally so a visitor can
// resume planning on another kiosk.
type VisitorPreferences struct {
	Hall             Hall      `json:"hall"`
	Session          int       `json:"session"`
	ChildAgeYears    int       `json:"child_age_years"`
	PreferredRoomIDs []string  `json:"preferred_room_ids"`
	BreakInterval    int       `json:"break_interval"`
	BreakDurationMin int       `json:"break_duration_min"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultVisitorPreferences returns the profile used before a visitor has
// saved anything: children's hall, first session, a break every two
// experiences.
func DefaultVisitorPreferences() VisitorPreferences {
	return VisitorPreferences{
		Hall:             HallChildren,
		Session:          1,
		ChildAgeYears:    6,
		PreferredRoomIDs: []string{},
		BreakInterval:    2,
		BreakDurationMin: 10,
	}
}
