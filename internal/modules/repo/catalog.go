package repo

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/pkg/schedule"
)

// The venue ships a default dataset; deployments can point Catalog.Path at
// their own file with the same shape.
//
//go:embed data/catalog.json
var defaultCatalogJSON []byte

// Catalog is the static room/hall dataset. It is loaded once at startup and
// read-only afterwards; every accessor returns shared slices that callers
// must not mutate.
type Catalog interface {
	Halls() []model.HallInfo
	Hall(id model.Hall) (model.HallInfo, bool)
	Rooms() []model.ExperienceRoom
	RoomsByHall(hall model.Hall) []model.ExperienceRoom
	InterestTypes() []model.InterestTypeInfo
	ScheduleTables() []schedule.RawTable
}

type catalogFile struct {
	Halls         []model.HallInfo         `json:"halls"`
	InterestTypes []model.InterestTypeInfo `json:"interest_types"`
	Rooms         []model.ExperienceRoom   `json:"rooms"`
	Schedules     []schedule.RawTable      `json:"schedules"`
}

type catalog struct {
	halls         []model.HallInfo
	hallByID      map[model.Hall]model.HallInfo
	rooms         []model.ExperienceRoom
	byHall        map[model.Hall][]model.ExperienceRoom
	interestTypes []model.InterestTypeInfo
	schedules     []schedule.RawTable
}

// NewCatalog loads the catalog from path, or from the embedded dataset when
// path is empty. A room referencing an unknown hall fails the load; a room
// with an unscheduled duration is kept but logged, since the planner will
// simply never pick it.
func NewCatalog(path string, log *zap.Logger) (Catalog, error) {
	raw := defaultCatalogJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		raw = b
	}

	var file catalogFile
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &catalog{
		halls:         file.Halls,
		hallByID:      make(map[model.Hall]model.HallInfo, len(file.Halls)),
		rooms:         file.Rooms,
		byHall:        make(map[model.Hall][]model.ExperienceRoom),
		interestTypes: file.InterestTypes,
		schedules:     file.Schedules,
	}
	for _, h := range file.Halls {
		c.hallByID[h.ID] = h
	}

	scheduled := make(map[int]bool, len(file.Schedules))
	for _, t := range file.Schedules {
		scheduled[t.DurationMin] = true
	}

	for _, room := range file.Rooms {
		if _, ok := c.hallByID[room.Hall]; !ok {
			return nil, fmt.Errorf("room %s references unknown hall %q", room.ID, room.Hall)
		}
		if !scheduled[room.DurationMin] && log != nil {
			log.Warn("room duration has no slot schedule, room will never be planned",
				zap.String("room_id", room.ID),
				zap.Int("duration_min", room.DurationMin),
			)
		}
		c.byHall[room.Hall] = append(c.byHall[room.Hall], room)
	}

	return c, nil
}

func (c *catalog) Halls() []model.HallInfo { return c.halls }

func (c *catalog) Hall(id model.Hall) (model.HallInfo, bool) {
	h, ok := c.hallByID[id]
	return h, ok
}

func (c *catalog) Rooms() []model.ExperienceRoom { return c.rooms }

func (c *catalog) RoomsByHall(hall model.Hall) []model.ExperienceRoom {
	return c.byHall[hall]
}

func (c *catalog) InterestTypes() []model.InterestTypeInfo { return c.interestTypes }

func (c *catalog) ScheduleTables() []schedule.RawTable { return c.schedules }
