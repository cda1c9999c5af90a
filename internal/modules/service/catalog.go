package service

import (
	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/repo"
	"github.com/courseway-io/Courseway/internal/pkg/clock"
	"github.com/courseway-io/Courseway/internal/pkg/schedule"
)

// CatalogService answers read-only queries over the static hall/room
// dataset and the slot timetable. It holds no per-request state.
type CatalogService interface {
	Halls() []model.HallInfo
	InterestTypes() []model.InterestTypeInfo
	RoomsForHall(in RoomsForHallInput) ([]model.ExperienceRoom, error)
	Timetable(in TimetableInput) (*TimetableOutput, error)
	Sessions(currentTime string) SessionsOutput
}

type catalogService struct {
	cat repo.Catalog
	reg *schedule.Registry
}

func NewCatalogService(cat repo.Catalog, reg *schedule.Registry) CatalogService {
	return &catalogService{cat: cat, reg: reg}
}

func (s *catalogService) Halls() []model.HallInfo { return s.cat.Halls() }

func (s *catalogService) InterestTypes() []model.InterestTypeInfo { return s.cat.InterestTypes() }

type RoomsForHallInput struct {
	Hall model.Hall
	// AgeYears filters rooms to those a child of this age may enter;
	// 0 disables the filter.
	AgeYears    int
	PopularOnly bool
}

// RoomsForHall lists a hall's rooms, optionally narrowed by age
// eligibility and popularity.
func (s *catalogService) RoomsForHall(in RoomsForHallInput) ([]model.ExperienceRoom, error) {
	if _, ok := s.cat.Hall(in.Hall); !ok {
		return nil, ErrUnknownHall
	}

	rooms := s.cat.RoomsByHall(in.Hall)
	out := make([]model.ExperienceRoom, 0, len(rooms))
	for _, r := range rooms {
		if in.AgeYears > 0 && !r.EligibleForAgeMonths(in.AgeYears*12) {
			continue
		}
		if in.PopularOnly && !r.IsPopular {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type TimetableInput struct {
	Hall        model.Hall
	CurrentTime string
	Session     int
	AgeYears    int
}

// TimetableRoom is one timetable cell: a room plus its next slot, when one
// remains in the session.
type TimetableRoom struct {
	model.ExperienceRoom
	NextTime string `json:"next_time,omitempty"`
}

type TimetableGroup struct {
	DurationMin int             `json:"duration_min"`
	Rooms       []TimetableRoom `json:"rooms"`
}

type TimetableOutput struct {
	Hall           model.Hall       `json:"hall"`
	Session        clock.Session    `json:"session"`
	RemainingLabel string           `json:"remaining_label"`
	Groups         []TimetableGroup `json:"groups"`
}

// Timetable renders a hall's rooms grouped by duration ascending, each with
// its next available slot at or after the given time.
func (s *catalogService) Timetable(in TimetableInput) (*TimetableOutput, error) {
	sess, ok := clock.SessionByID(in.Session)
	if !ok {
		return nil, ErrUnknownSession
	}

	rooms, err := s.RoomsForHall(RoomsForHallInput{Hall: in.Hall, AgeYears: in.AgeYears})
	if err != nil {
		return nil, err
	}

	currentMin := clock.ToMinutes(in.CurrentTime)
	out := &TimetableOutput{
		Hall:           in.Hall,
		Session:        sess,
		RemainingLabel: clock.RemainingLabel(in.CurrentTime, sess),
	}
	for _, group := range schedule.GroupByDuration(rooms) {
		tg := TimetableGroup{DurationMin: group.DurationMin, Rooms: make([]TimetableRoom, 0, len(group.Rooms))}
		for _, r := range group.Rooms {
			tr := TimetableRoom{ExperienceRoom: r}
			if start, ok := s.reg.NextSlot(r, currentMin, sess.ID); ok {
				tr.NextTime = clock.FromMinutes(start)
			}
			tg.Rooms = append(tg.Rooms, tr)
		}
		out.Groups = append(out.Groups, tg)
	}
	return out, nil
}

type SessionsOutput struct {
	Sessions       []clock.Session `json:"sessions"`
	Current        *clock.Session  `json:"current,omitempty"`
	RemainingLabel string          `json:"remaining_label,omitempty"`
}

// Sessions reports the venue's fixed session windows; when currentTime is
// given it also resolves the session in progress, if any.
func (s *catalogService) Sessions(currentTime string) SessionsOutput {
	out := SessionsOutput{Sessions: clock.Sessions()}
	if currentTime == "" {
		return out
	}
	if sess, ok := clock.SessionFor(currentTime); ok {
		out.Current = &sess
		out.RemainingLabel = clock.RemainingLabel(currentTime, sess)
	}
	return out
}
