package model

// Hall identifies one of the venue's themed experience halls.
type Hall string

const (
	HallChildren Hall = "children"
	HallYouth    Hall = "youth"
	HallFuture   Hall = "future"
	HallSkills   Hall = "skills"
	HallCareer   Hall = "career"
	HallMakers   Hall = "makers"
)

// Valid reports whether h names a known hall.
func (h Hall) Valid() bool {
	switch h {
	case HallChildren, HallYouth, HallFuture, HallSkills, HallCareer, HallMakers:
		return true
	default:
		return false
	}
}

// InterestCode is a RIASEC category code attached to an experience room.
type InterestCode string

const (
	InterestRealistic     InterestCode = "R"
	InterestInvestigative InterestCode = "I"
	InterestArtistic      InterestCode = "A"
	InterestSocial        InterestCode = "S"
	InterestEnterprising  InterestCode = "E"
	InterestConventional  InterestCode = "C"
)

// Durations lists the only experience lengths the venue operates, in minutes.
// Rooms with any other duration have no slot schedule and are never plannable.
var Durations = []int{15, 20, 25, 30, 35, 40}

// ValidDuration reports whether min is one of the operated experience lengths.
func ValidDuration(min int) bool {
	for _, d := range Durations {
		if d == min {
			return true
		}
	}
	return false
}

// ExperienceRoom is one bookable activity in the catalog. Catalog data is
// immutable reference data: loaded once at startup and only ever borrowed.
type ExperienceRoom struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Hall         Hall           `json:"hall"`
	Floor        string         `json:"floor"`
	MapNumber    int            `json:"map_number"`
	DurationMin  int            `json:"duration_min"`
	MinAgeMonths int            `json:"min_age_months"`
	JoyCurrency  int            `json:"joy_currency"`
	InterestType []InterestCode `json:"interest_type"`
	Icon         string         `json:"icon"`
	IsPopular    bool           `json:"is_popular,omitempty"`
}

// EligibleForAgeMonths reports whether a child of the given age (in months)
// meets the room's minimum age requirement.
func (r ExperienceRoom) EligibleForAgeMonths(months int) bool {
	return r.MinAgeMonths <= months
}

// HallInfo is display metadata for one hall, owned by the catalog dataset.
type HallInfo struct {
	ID        Hall   `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"name_en"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	AgeRange  string `json:"age_range"`
	RoomCount int    `json:"room_count"`
}

// InterestTypeInfo is display metadata for one RIASEC interest category.
type InterestTypeInfo struct {
	Code     InterestCode `json:"code"`
	Name     string       `json:"name"`
	FullName string       `json:"full_name"`
	Color    string       `json:"color"`
	Bg       string       `json:"bg"`
}
