package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/vitalize/club-api/internal/models"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

const dashboardStatsCacheKey = "dashboard:stats"

type programCounter interface {
	Count(ctx context.Context) (int, error)
}

type enrolmentCounter interface {
	Count(ctx context.Context) (int, error)
}

type attendanceStatsReader interface {
	Stats(ctx context.Context) (*models.AttendanceStats, error)
}

type progressScoreReader interface {
	AverageScore(ctx context.Context) (float64, error)
}

// DashboardService aggregates the club-wide counters shown on the landing
// page, with a short-lived cache in front of the store.
type DashboardService struct {
	programs   programCounter
	enrolments enrolmentCounter
	attendance attendanceStatsReader
	progress   progressScoreReader
	cache      *CacheService
	logger     *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(programs programCounter, enrolments enrolmentCounter, attendance attendanceStatsReader, progress progressScoreReader, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		programs:   programs,
		enrolments: enrolments,
		attendance: attendance,
		progress:   progress,
		cache:      cache,
		logger:     logger,
	}
}

// Stats returns the dashboard counters, serving from cache when warm. Cache
// failures degrade to a store read; they never fail the request.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, dashboardStatsCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, dashboardStatsCacheKey, stats, 0); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}
	return stats, nil
}

// Invalidate drops the cached counters after a mutation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardStatsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard stats", zap.Error(err))
	}
}

func (s *DashboardService) compute(ctx context.Context) (*models.DashboardStats, error) {
	programs, err := s.programs.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count programs")
	}
	enrolments, err := s.enrolments.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrolments")
	}
	attendance, err := s.attendance.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance stats")
	}
	avgScore, err := s.progress.AverageScore(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load average score")
	}

	stats := &models.DashboardStats{
		TotalPrograms:    programs,
		TotalEnrolments:  enrolments,
		TotalSessions:    attendance.TotalSessions,
		AttendedSessions: attendance.AttendedSessions,
		AverageScore:     math.Round(avgScore*10) / 10,
	}
	if attendance.TotalSessions > 0 {
		rate := float64(attendance.AttendedSessions) / float64(attendance.TotalSessions) * 100
		stats.AttendanceRate = math.Round(rate*10) / 10
	}
	return stats, nil
}
