package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/courseway-io/Courseway/internal/config"
	mq "github.com/courseway-io/Courseway/internal/infra/queue"
	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/repo"
	"github.com/courseway-io/Courseway/internal/pkg/clock"
	"github.com/courseway-io/Courseway/internal/pkg/planner"
	"github.com/courseway-io/Courseway/internal/pkg/schedule"
	"github.com/courseway-io/Courseway/internal/telemetry"
)

// CourseService generates and manages stored itineraries.
type CourseService interface {
	Generate(ctx context.Context, in GenerateCourseInput) (*model.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByVisitor(ctx context.Context, visitorID string, limit int) ([]model.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GenerateCourseInput struct {
	VisitorID   string
	CurrentTime string
	Session     int
	Hall        model.Hall
	// AgeYears filters candidate rooms by age eligibility; 0 disables it.
	AgeYears         int
	PreferredRoomIDs []string
	BreakInterval    int
	BreakDurationMin int
}

// CourseGeneratedEvent is published after a course is persisted.
type CourseGeneratedEvent struct {
	CourseID         string    `json:"course_id"`
	VisitorID        string    `json:"visitor_id,omitempty"`
	Hall             string    `json:"hall"`
	Session          int       `json:"session"`
	TotalExperiences int       `json:"total_experiences"`
	TotalJoy         int       `json:"total_joy"`
	TotalDurationMin int       `json:"total_duration_min"`
	CreatedAt        time.Time `json:"created_at"`
}

type courseService struct {
	courses repo.CourseRepo
	cat     repo.Catalog
	reg     *schedule.Registry
	pub     *mq.Publisher // nil when messaging is disabled
	cfg     *config.Config
	log     *zap.Logger
}

func NewCourseService(courses repo.CourseRepo, cat repo.Catalog, reg *schedule.Registry, pub *mq.Publisher, cfg *config.Config, log *zap.Logger) CourseService {
	return &courseService{
		courses: courses,
		cat:     cat,
		reg:     reg,
		pub:     pub,
		cfg:     cfg,
		log:     log,
	}
}

// Generate builds an itinerary for the given hall and session, persists it
// and, when messaging is enabled, publishes a CourseGeneratedEvent. An
// itinerary with zero items is still a valid result and is persisted.
func (s *courseService) Generate(ctx context.Context, in GenerateCourseInput) (*model.Course, error) {
	start := time.Now()

	if _, ok := s.cat.Hall(in.Hall); !ok {
		return nil, ErrUnknownHall
	}
	sess, ok := clock.SessionByID(in.Session)
	if !ok {
		return nil, ErrUnknownSession
	}

	rooms := s.cat.RoomsByHall(in.Hall)
	if in.AgeYears > 0 {
		eligible := make([]model.ExperienceRoom, 0, len(rooms))
		for _, r := range rooms {
			if r.EligibleForAgeMonths(in.AgeYears * 12) {
				eligible = append(eligible, r)
			}
		}
		rooms = eligible
	}

	pl := planner.New(planner.DefaultConfig(sess), s.reg, s.log)
	plan := pl.Generate(planner.Input{
		CurrentTime:      in.CurrentTime,
		PreferredRoomIDs: in.PreferredRoomIDs,
		BreakInterval:    in.BreakInterval,
		BreakDurationMin: in.BreakDurationMin,
		Rooms:            rooms,
	})

	course := &model.Course{
		ID:               parseOrNewID(plan.ID),
		VisitorID:        in.VisitorID,
		Hall:             in.Hall,
		Session:          in.Session,
		Items:            datatypesItems(plan.Items),
		TotalExperiences: plan.TotalExperiences,
		TotalJoy:         plan.TotalJoy,
		TotalDurationMin: plan.TotalDurationMin,
		CreatedAt:        plan.CreatedAt,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		telemetry.RecordGenerateError(ctx, "db", float64(time.Since(start).Milliseconds()))
		return nil, err
	}

	telemetry.RecordGenerateSuccess(ctx, string(in.Hall),
		float64(time.Since(start).Milliseconds()), int64(course.TotalExperiences))

	s.publishGenerated(ctx, course)
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if errors.Is(err, repo.ErrCourseNotFound) {
		return nil, ErrCourseNotFound
	}
	return c, err
}

func (s *courseService) ListByVisitor(ctx context.Context, visitorID string, limit int) ([]model.Course, error) {
	return s.courses.ListByVisitor(ctx, visitorID, limit)
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.courses.Delete(ctx, id)
	if errors.Is(err, repo.ErrCourseNotFound) {
		return ErrCourseNotFound
	}
	return err
}

func (s *courseService) publishGenerated(ctx context.Context, c *model.Course) {
	if s.pub == nil || !s.cfg.RabbitMQ.Enabled {
		return
	}
	event := CourseGeneratedEvent{
		CourseID:         c.ID.String(),
		VisitorID:        c.VisitorID,
		Hall:             string(c.Hall),
		Session:          c.Session,
		TotalExperiences: c.TotalExperiences,
		TotalJoy:         c.TotalJoy,
		TotalDurationMin: c.TotalDurationMin,
		CreatedAt:        c.CreatedAt,
	}
	err := s.pub.PublishJSON(ctx,
		s.cfg.RabbitMQ.ExchangeName.CourseEvents,
		s.cfg.RabbitMQ.RoutingKey.CourseGenerated,
		event,
	)
	if err != nil {
		// Publishing is best effort; the course is already persisted.
		s.log.Warn("publish course generated event failed",
			zap.String("course_id", event.CourseID), zap.Error(err))
	}
}

func datatypesItems(items []planner.Item) datatypes.JSONType[[]model.CourseItem] {
	out := make([]model.CourseItem, 0, len(items))
	for _, it := range items {
		item := model.CourseItem{
			StartTime: it.StartTime(),
			EndTime:   it.EndTime(),
		}
		switch it.Kind {
		case planner.KindExperience:
			item.Type = model.CourseItemExperience
			item.RoomID = it.Room.ID
			item.Room = it.Room
		case planner.KindBreak:
			item.Type = model.CourseItemBreak
		}
		out = append(out, item)
	}
	return datatypes.NewJSONType(out)
}

func parseOrNewID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.New()
	}
	return parsed
}
