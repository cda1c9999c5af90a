package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/courseway-io/Courseway/internal/modules/model"
)

var ErrPreferencesNotFound = errors.New("visitor preferences not found")

const (
	prefKeyPrefix = "courseway:prefs:"
	// Preferences expire after a season without visits.
	prefTTL = 90 * 24 * time.Hour
)

// PreferenceRepo persists per-visitor planning preferences in redis so a
// visitor can resume on another kiosk or device.
type PreferenceRepo interface {
	Get(ctx context.Context, visitorID string) (*model.VisitorPreferences, error)
	Put(ctx context.Context, visitorID string, prefs *model.VisitorPreferences) error
	Delete(ctx context.Context, visitorID string) error
}

type preferenceRepo struct {
	rdb *redis.Client
}

func NewPreferenceRepo(rdb *redis.Client) PreferenceRepo {
	return &preferenceRepo{rdb: rdb}
}

func prefKey(visitorID string) string { return prefKeyPrefix + visitorID }

func (r *preferenceRepo) Get(ctx context.Context, visitorID string) (*model.VisitorPreferences, error) {
	raw, err := r.rdb.Get(ctx, prefKey(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	var prefs model.VisitorPreferences
	if err := sonic.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}

func (r *preferenceRepo) Put(ctx context.Context, visitorID string, prefs *model.VisitorPreferences) error {
	raw, err := sonic.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := r.rdb.Set(ctx, prefKey(visitorID), raw, prefTTL).Err(); err != nil {
		return fmt.Errorf("put preferences: %w", err)
	}
	return nil
}

func (r *preferenceRepo) Delete(ctx context.Context, visitorID string) error {
	return r.rdb.Del(ctx, prefKey(visitorID)).Err()
}
