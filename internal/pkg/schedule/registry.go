// Package schedule holds the fixed slot timetable of the venue and answers
// availability queries over it. Slot data is constant: it is parsed into
// minute offsets exactly once when the Registry is built, because the
// planner queries it once per candidate room per iteration.
package schedule

import (
	"sort"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/pkg/clock"
)

// RawTable is the external dataset shape for one experience duration: the
// fixed HH:MM start times it runs at in each session, ascending.
type RawTable struct {
	DurationMin int      `json:"duration_min"`
	Session1    []string `json:"session1"`
	Session2    []string `json:"session2"`
}

// Registry is a precomputed two-level lookup: duration -> session -> slot
// start offsets in minutes, ascending. Immutable after construction.
type Registry struct {
	slots map[int]map[int][]int
}

// NewRegistry builds a Registry from raw slot tables. Start times are
// converted to minute offsets and sorted; later tables for the same
// duration replace earlier ones.
func NewRegistry(tables []RawTable) *Registry {
	r := &Registry{slots: make(map[int]map[int][]int, len(tables))}
	for _, t := range tables {
		r.slots[t.DurationMin] = map[int][]int{
			1: toSortedMinutes(t.Session1),
			2: toSortedMinutes(t.Session2),
		}
	}
	return r
}

func toSortedMinutes(times []string) []int {
	mins := make([]int, 0, len(times))
	for _, s := range times {
		mins = append(mins, clock.ToMinutes(s))
	}
	sort.Ints(mins)
	return mins
}

// SlotsFor returns the ascending slot starts for a (duration, session)
// pair. Unknown durations and sessions yield nil; callers treat that as
// "room never plannable", not as an error.
func (r *Registry) SlotsFor(durationMin, session int) []int {
	bySession, ok := r.slots[durationMin]
	if !ok {
		return nil
	}
	return bySession[session]
}

// NextSlot finds the room's earliest slot starting at or after currentMin
// within the given session. The second return is false when every slot has
// already passed or the room's duration has no schedule.
func (r *Registry) NextSlot(room model.ExperienceRoom, currentMin, session int) (int, bool) {
	slots := r.SlotsFor(room.DurationMin, session)
	if len(slots) == 0 {
		return 0, false
	}
	idx := sort.SearchInts(slots, currentMin)
	if idx == len(slots) {
		return 0, false
	}
	return slots[idx], true
}

// RoomSlot pairs a room with its next available slot start.
type RoomSlot struct {
	Room     model.ExperienceRoom `json:"room"`
	StartMin int                  `json:"start_min"`
}

// StartTime returns the slot start as HH:MM.
func (rs RoomSlot) StartTime() string { return clock.FromMinutes(rs.StartMin) }

// AvailableRooms maps each room to its earliest slot at or after currentMin,
// dropping rooms with none, sorted ascending by slot time. Rooms sharing a
// slot keep their input order. Display-layer helper; the planner recomputes
// per iteration instead because its cursor advances.
func (r *Registry) AvailableRooms(rooms []model.ExperienceRoom, currentMin, session int) []RoomSlot {
	out := make([]RoomSlot, 0, len(rooms))
	for _, room := range rooms {
		if start, ok := r.NextSlot(room, currentMin, session); ok {
			out = append(out, RoomSlot{Room: room, StartMin: start})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartMin < out[j].StartMin })
	return out
}

// DurationGroup is one timetable row: all rooms sharing a duration.
type DurationGroup struct {
	DurationMin int                    `json:"duration_min"`
	Rooms       []model.ExperienceRoom `json:"rooms"`
}

// GroupByDuration buckets rooms by duration, groups ascending by duration
// key, room order inside a group preserved.
func GroupByDuration(rooms []model.ExperienceRoom) []DurationGroup {
	byDur := make(map[int][]model.ExperienceRoom)
	for _, room := range rooms {
		byDur[room.DurationMin] = append(byDur[room.DurationMin], room)
	}

	keys := make([]int, 0, len(byDur))
	for d := range byDur {
		keys = append(keys, d)
	}
	sort.Ints(keys)

	groups := make([]DurationGroup, 0, len(keys))
	for _, d := range keys {
		groups = append(groups, DurationGroup{DurationMin: d, Rooms: byDur[d]})
	}
	return groups
}
