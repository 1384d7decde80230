package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalize/club-api/internal/models"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

type stubCacheRepo struct {
	store    map[string][]byte
	getCalls int
	setCalls int
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	s.getCalls++
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.setCalls++
	if s.store == nil {
		s.store = map[string][]byte{}
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	delete(s.store, pattern)
	return nil
}

type stubCounter struct {
	total int
	calls int
}

func (s *stubCounter) Count(_ context.Context) (int, error) {
	s.calls++
	return s.total, nil
}

type stubAttendanceStats struct {
	stats models.AttendanceStats
}

func (s *stubAttendanceStats) Stats(_ context.Context) (*models.AttendanceStats, error) {
	stats := s.stats
	return &stats, nil
}

type stubScoreReader struct {
	avg float64
}

func (s *stubScoreReader) AverageScore(_ context.Context) (float64, error) {
	return s.avg, nil
}

func newDashboardFixture(cacheRepo CacheRepository) (*DashboardService, *stubCounter) {
	programs := &stubCounter{total: 4}
	enrolments := &stubCounter{total: 12}
	attendance := &stubAttendanceStats{stats: models.AttendanceStats{TotalSessions: 30, AttendedSessions: 25}}
	progress := &stubScoreReader{avg: 82.46}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, cacheRepo != nil)
	return NewDashboardService(programs, enrolments, attendance, progress, cacheSvc, nil), programs
}

func TestDashboardServiceStats(t *testing.T) {
	svc, _ := newDashboardFixture(&stubCacheRepo{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalPrograms)
	assert.Equal(t, 12, stats.TotalEnrolments)
	assert.Equal(t, 30, stats.TotalSessions)
	assert.Equal(t, 25, stats.AttendedSessions)
	assert.InDelta(t, 83.3, stats.AttendanceRate, 0.001)
	assert.InDelta(t, 82.5, stats.AverageScore, 0.001)
}

func TestDashboardServiceStatsServedFromCache(t *testing.T) {
	cache := &stubCacheRepo{}
	svc, programs := newDashboardFixture(cache)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, programs.calls)
	assert.Equal(t, 1, cache.setCalls)

	// Second read must come from cache without touching the counters.
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalPrograms)
	assert.Equal(t, 1, programs.calls)
}

func TestDashboardServiceInvalidate(t *testing.T) {
	cache := &stubCacheRepo{}
	svc, programs := newDashboardFixture(cache)

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	svc.Invalidate(context.Background())

	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, programs.calls)
}

func TestDashboardServiceNoSessions(t *testing.T) {
	programs := &stubCounter{}
	enrolments := &stubCounter{}
	attendance := &stubAttendanceStats{}
	progress := &stubScoreReader{}
	cacheSvc := NewCacheService(nil, nil, time.Minute, nil, false)
	svc := NewDashboardService(programs, enrolments, attendance, progress, cacheSvc, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.AttendanceRate)
	assert.Zero(t, stats.AverageScore)
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(nil, nil, time.Minute, nil, false)

	var out models.DashboardStats
	hit, err := svc.Get(context.Background(), "dashboard:stats", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, svc.Set(context.Background(), "dashboard:stats", out, 0))
	assert.NoError(t, svc.Invalidate(context.Background(), "dashboard:stats"))
}
