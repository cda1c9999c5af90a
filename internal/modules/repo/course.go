package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courseway-io/Courseway/internal/modules/model"
)

var ErrCourseNotFound = errors.New("course not found")

// MaxCourseListLimit caps how many stored courses one listing returns.
const MaxCourseListLimit = 50

type CourseRepo interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByVisitor(ctx context.Context, visitorID string, limit int) ([]model.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) CourseRepo {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, c *model.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByVisitor(ctx context.Context, visitorID string, limit int) ([]model.Course, error) {
	if limit <= 0 || limit > MaxCourseListLimit {
		limit = MaxCourseListLimit
	}
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Course{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}
