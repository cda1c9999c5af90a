// Package planner builds same-day visit itineraries over the venue's fixed
// slot timetable. The algorithm is a greedy single pass: each iteration
// scores every unused candidate room by how long the visitor would wait for
// its next slot, discounted for preferred and popular rooms, and commits
// the cheapest one. It deliberately does not search for a globally optimal
// itinerary.
//
// Generation is a pure function of its input (aside from the identity and
// creation timestamp stamped at the end): identical inputs produce
// identical itineraries, and caller-supplied room order decides score ties.
package planner

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/pkg/clock"
	"github.com/courseway-io/Courseway/internal/pkg/schedule"
)

// Tuning defaults. MaxIterations is a safety bound against a loop that
// fails to advance, not a knob for itinerary length.
const (
	DefaultMaxIterations  = 20
	DefaultMinRemaining   = 15
	DefaultPreferredBonus = 30
	DefaultPopularBonus   = 15
)

// Config carries the session window and tuning constants for one planner.
// It is passed in explicitly rather than read from package state so tests
// can vary it without process-wide side effects.
type Config struct {
	Session clock.Session

	// MaxIterations caps loop passes regardless of schedule data.
	MaxIterations int
	// MinRemaining stops generation once fewer minutes than this remain
	// before the session closes.
	MinRemaining int
	// PreferredBonus and PopularBonus are minute-equivalent score
	// discounts. They rank candidates only; a resulting negative score is
	// not a duration.
	PreferredBonus int
	PopularBonus   int
}

// DefaultConfig returns the production tuning for a session.
func DefaultConfig(sess clock.Session) Config {
	return Config{
		Session:        sess,
		MaxIterations:  DefaultMaxIterations,
		MinRemaining:   DefaultMinRemaining,
		PreferredBonus: DefaultPreferredBonus,
		PopularBonus:   DefaultPopularBonus,
	}
}

// ItemKind discriminates itinerary entries.
type ItemKind string

const (
	KindExperience ItemKind = "experience"
	KindBreak      ItemKind = "break"
)

// Item is one itinerary entry: either an experience at a room or a rest
// break. Room is set exactly when Kind is KindExperience and snapshots the
// catalog record at generation time.
type Item struct {
	Kind     ItemKind
	Room     *model.ExperienceRoom
	StartMin int
	EndMin   int
}

// DurationMin returns the item's length in minutes.
func (it Item) DurationMin() int { return it.EndMin - it.StartMin }

// StartTime returns the item start as HH:MM.
func (it Item) StartTime() string { return clock.FromMinutes(it.StartMin) }

// EndTime returns the item end as HH:MM.
func (it Item) EndTime() string { return clock.FromMinutes(it.EndMin) }

// Course is one generated itinerary. Items are in chronological order by
// construction; aggregates are recomputed from the final item sequence.
type Course struct {
	ID               string
	CreatedAt        time.Time
	Session          clock.Session
	Items            []Item
	TotalExperiences int
	TotalJoy         int
	TotalDurationMin int
}

// Input is one generation request. Rooms must already be filtered for age
// eligibility and hall selection by the caller; their order is part of the
// contract because score ties keep the first candidate encountered.
type Input struct {
	CurrentTime      string
	PreferredRoomIDs []string
	BreakInterval    int // 0 disables breaks
	BreakDurationMin int
	Rooms            []model.ExperienceRoom
}

// Planner generates courses against one schedule registry. Safe for
// concurrent use: each Generate call owns its own working state.
type Planner struct {
	cfg Config
	reg *schedule.Registry
	log *zap.Logger

	// overridable in tests for deterministic identity/timestamps
	now   func() time.Time
	newID func() string
}

// New creates a Planner. A nil logger disables diagnostics.
func New(cfg Config, reg *schedule.Registry, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		cfg:   cfg,
		reg:   reg,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Generate produces an itinerary from the current time to the session close.
// It never fails: abnormal conditions (no eligible slot, break would
// overrun the session) stop generation early, and an empty candidate set
// yields a valid course with zero items.
func (p *Planner) Generate(in Input) Course {
	sess := p.cfg.Session
	lastEnd := clock.ToMinutes(in.CurrentTime)
	used := make(map[string]struct{}, len(in.Rooms))
	preferred := make(map[string]struct{}, len(in.PreferredRoomIDs))
	for _, id := range in.PreferredRoomIDs {
		preferred[id] = struct{}{}
	}

	var items []Item
	experienceCount := 0

	for iter := 0; iter < p.cfg.MaxIterations && lastEnd <= sess.EndMin-p.cfg.MinRemaining; iter++ {
		// A break is due after every BreakInterval completed experiences.
		// It is only inserted when it fits before closing and at least one
		// plannable slot remains after it; otherwise nothing can follow
		// and generation stops here.
		if in.BreakInterval > 0 && experienceCount > 0 && experienceCount%in.BreakInterval == 0 {
			breakEnd := lastEnd + in.BreakDurationMin
			if breakEnd >= sess.EndMin {
				break
			}
			if !p.hasPlannableSlot(in.Rooms, used, breakEnd) {
				break
			}
			items = append(items, Item{Kind: KindBreak, StartMin: lastEnd, EndMin: breakEnd})
			lastEnd = breakEnd
		}

		// Best candidate: smallest score wins, ties keep the first room in
		// input order. Each room contributes only its earliest fitting slot.
		bestIdx := -1
		bestStart := 0
		bestScore := 0
		for i := range in.Rooms {
			room := &in.Rooms[i]
			if _, ok := used[room.ID]; ok {
				continue
			}
			start, ok := p.reg.NextSlot(*room, lastEnd, sess.ID)
			if !ok || start+room.DurationMin > sess.EndMin {
				continue
			}

			score := start - lastEnd
			if _, ok := preferred[room.ID]; ok {
				score -= p.cfg.PreferredBonus
			}
			if room.IsPopular {
				score -= p.cfg.PopularBonus
			}

			if bestIdx == -1 || score < bestScore {
				bestIdx = i
				bestStart = start
				bestScore = score
			}
		}
		if bestIdx == -1 {
			break
		}

		room := in.Rooms[bestIdx] // copy: items snapshot the catalog record
		items = append(items, Item{
			Kind:     KindExperience,
			Room:     &room,
			StartMin: bestStart,
			EndMin:   bestStart + room.DurationMin,
		})
		used[room.ID] = struct{}{}
		lastEnd = bestStart + room.DurationMin
		experienceCount++
	}

	// An itinerary must not end on rest.
	if n := len(items); n > 0 && items[n-1].Kind == KindBreak {
		items = items[:n-1]
	}

	course := p.finalize(items, sess)
	p.log.Debug("course generated",
		zap.String("course_id", course.ID),
		zap.Int("session", sess.ID),
		zap.Int("experiences", course.TotalExperiences),
		zap.Int("total_joy", course.TotalJoy),
		zap.Int("total_duration_min", course.TotalDurationMin),
	)
	return course
}

// hasPlannableSlot reports whether any unused room still has a slot that
// starts at or after fromMin and ends by session close.
func (p *Planner) hasPlannableSlot(rooms []model.ExperienceRoom, used map[string]struct{}, fromMin int) bool {
	for _, room := range rooms {
		if _, ok := used[room.ID]; ok {
			continue
		}
		start, ok := p.reg.NextSlot(room, fromMin, p.cfg.Session.ID)
		if ok && start+room.DurationMin <= p.cfg.Session.EndMin {
			return true
		}
	}
	return false
}

// finalize recomputes aggregates from the final item sequence and stamps
// identity and creation time.
func (p *Planner) finalize(items []Item, sess clock.Session) Course {
	c := Course{
		ID:        p.newID(),
		CreatedAt: p.now(),
		Session:   sess,
		Items:     items,
	}
	for _, it := range items {
		c.TotalDurationMin += it.DurationMin()
		switch it.Kind {
		case KindExperience:
			c.TotalExperiences++
			if it.Room != nil {
				c.TotalJoy += it.Room.JoyCurrency
			}
		case KindBreak:
			// breaks contribute duration only
		}
	}
	return c
}
