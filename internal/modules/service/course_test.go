package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courseway-io/Courseway/internal/config"
	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/repo"
)

// MockCourseRepo is a mock implementation of CourseRepo
type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, c *model.Course) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseRepo) ListByVisitor(ctx context.Context, visitorID string, limit int) ([]model.Course, error) {
	args := m.Called(ctx, visitorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCourseService(courses repo.CourseRepo) CourseService {
	return NewCourseService(courses, testCatalog(), testScheduleRegistry(), nil, &config.Config{}, zap.NewNop())
}

func TestCourseService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown hall", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		svc := newCourseService(mockRepo)

		_, err := svc.Generate(ctx, GenerateCourseInput{Hall: "atlantis", Session: 1, CurrentTime: "09:30"})
		assert.ErrorIs(t, err, ErrUnknownHall)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("unknown session", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		svc := newCourseService(mockRepo)

		_, err := svc.Generate(ctx, GenerateCourseInput{Hall: model.HallChildren, Session: 5, CurrentTime: "09:30"})
		assert.ErrorIs(t, err, ErrUnknownSession)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("generates and persists an itinerary", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Course")).Return(nil)
		svc := newCourseService(mockRepo)

		course, err := svc.Generate(ctx, GenerateCourseInput{
			VisitorID:   "visitor-1",
			Hall:        model.HallChildren,
			Session:     1,
			CurrentTime: "09:30",
		})
		require.NoError(t, err)
		require.NotNil(t, course)

		assert.NotEqual(t, uuid.Nil, course.ID)
		assert.Equal(t, "visitor-1", course.VisitorID)
		assert.Equal(t, model.HallChildren, course.Hall)
		assert.Equal(t, 1, course.Session)

		items := course.Items.Data()
		require.NotEmpty(t, items)
		assert.Equal(t, "09:30", items[0].StartTime)

		wantJoy, wantDuration, wantCount := 0, 0, 0
		for _, it := range items {
			if it.Type != model.CourseItemExperience {
				continue
			}
			require.NotNil(t, it.Room)
			assert.Equal(t, it.Room.ID, it.RoomID)
			wantJoy += it.Room.JoyCurrency
			wantDuration += it.Room.DurationMin
			wantCount++
		}
		assert.Equal(t, wantCount, course.TotalExperiences)
		assert.Equal(t, wantJoy, course.TotalJoy)
		assert.Equal(t, wantDuration, course.TotalDurationMin)

		mockRepo.AssertExpectations(t)
	})

	t.Run("age filter excludes ineligible rooms", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Course")).Return(nil)
		svc := newCourseService(mockRepo)

		course, err := svc.Generate(ctx, GenerateCourseInput{
			Hall:        model.HallChildren,
			Session:     1,
			CurrentTime: "09:30",
			AgeYears:    6,
		})
		require.NoError(t, err)
		for _, it := range course.Items.Data() {
			assert.NotEqual(t, "ch-02", it.RoomID)
		}
	})

	t.Run("empty itinerary is still persisted", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Course")).Return(nil)
		svc := newCourseService(mockRepo)

		// Too close to session end for any experience to fit.
		course, err := svc.Generate(ctx, GenerateCourseInput{
			Hall:        model.HallChildren,
			Session:     1,
			CurrentTime: "13:20",
		})
		require.NoError(t, err)
		assert.Empty(t, course.Items.Data())
		assert.Zero(t, course.TotalExperiences)
		mockRepo.AssertExpectations(t)
	})

	t.Run("persistence failure", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Course")).Return(errors.New("database error"))
		svc := newCourseService(mockRepo)

		_, err := svc.Generate(ctx, GenerateCourseInput{
			Hall:        model.HallChildren,
			Session:     1,
			CurrentTime: "09:30",
		})
		assert.Error(t, err)
	})
}

func TestCourseService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("GetByID", ctx, id).Return(&model.Course{ID: id}, nil)
		svc := newCourseService(mockRepo)

		course, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, course.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("GetByID", ctx, id).Return(nil, repo.ErrCourseNotFound)
		svc := newCourseService(mockRepo)

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_ListByVisitor(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCourseRepo)
	mockRepo.On("ListByVisitor", ctx, "visitor-1", 10).
		Return([]model.Course{{VisitorID: "visitor-1"}}, nil)
	svc := newCourseService(mockRepo)

	courses, err := svc.ListByVisitor(ctx, "visitor-1", 10)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestCourseService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("Delete", ctx, id).Return(nil)
		svc := newCourseService(mockRepo)

		assert.NoError(t, svc.Delete(ctx, id))
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockCourseRepo)
		mockRepo.On("Delete", ctx, id).Return(repo.ErrCourseNotFound)
		svc := newCourseService(mockRepo)

		assert.ErrorIs(t, svc.Delete(ctx, id), ErrCourseNotFound)
	})
}
