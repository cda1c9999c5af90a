package service

import (
	"context"
	"errors"
	"time"

	"github.com/courseway-io/Courseway/internal/modules/model"
	"github.com/courseway-io/Courseway/internal/modules/repo"
	"github.com/courseway-io/Courseway/internal/pkg/clock"
)

// PreferenceService manages per-visitor planning preferences. A visitor who
// has never saved preferences gets the defaults rather than a not-found error.
type PreferenceService interface {
	Get(ctx context.Context, visitorID string) (*model.VisitorPreferences, error)
	Put(ctx context.Context, visitorID string, prefs *model.VisitorPreferences) (*model.VisitorPreferences, error)
	Delete(ctx context.Context, visitorID string) error
}

type preferenceService struct {
	prefs repo.PreferenceRepo
	cat   repo.Catalog
	now   func() time.Time
}

func NewPreferenceService(prefs repo.PreferenceRepo, cat repo.Catalog) PreferenceService {
	return &preferenceService{prefs: prefs, cat: cat, now: time.Now}
}

func (s *preferenceService) Get(ctx context.Context, visitorID string) (*model.VisitorPreferences, error) {
	p, err := s.prefs.Get(ctx, visitorID)
	if errors.Is(err, repo.ErrPreferencesNotFound) {
		defaults := model.DefaultVisitorPreferences()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Put validates and stores the full preference document. Partial updates are
// not supported; clients send the whole document each time.
func (s *preferenceService) Put(ctx context.Context, visitorID string, prefs *model.VisitorPreferences) (*model.VisitorPreferences, error) {
	if _, ok := s.cat.Hall(prefs.Hall); !ok {
		return nil, ErrUnknownHall
	}
	if _, ok := clock.SessionByID(prefs.Session); !ok {
		return nil, ErrUnknownSession
	}

	prefs.UpdatedAt = s.now().UTC()
	if err := s.prefs.Put(ctx, visitorID, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *preferenceService) Delete(ctx context.Context, visitorID string) error {
	return s.prefs.Delete(ctx, visitorID)
}
