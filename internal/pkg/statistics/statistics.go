package statistics

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/app/repository"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/cache"
)

const (
	CacheKeyStatusCounts = "statistics:complaints:status"
	CacheExpiration      = 30 * time.Minute
)

// Service computes read-only views over the complaint store. It never
// mutates anything; the only write path it touches is the cache.
type Service struct {
	repos *repository.Repositories
}

// NewService creates a statistics service over the given repositories
func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// CountsByStatus returns the total complaint count and the per-status
// breakdown for the three known statuses. Results are cached briefly; any
// complaint write must call InvalidateCounts.
func (s *Service) CountsByStatus() (*models.StatusCounts, error) {
	if raw, err := cache.Get(CacheKeyStatusCounts); err == nil {
		var cached models.StatusCounts
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.queryStatusCounts()
	if err != nil {
		return nil, err
	}

	if cache.Enabled() {
		if raw, err := json.Marshal(counts); err == nil {
			if err := cache.Set(CacheKeyStatusCounts, string(raw), CacheExpiration); err != nil {
				log.Printf("Error caching status counts: %v", err)
			}
		}
	}

	return counts, nil
}

func (s *Service) queryStatusCounts() (*models.StatusCounts, error) {
	total, err := s.repos.Complaint.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}
	received, err := s.repos.Complaint.CountByStatus(models.StatusReceived)
	if err != nil {
		return nil, fmt.Errorf("failed to count received complaints: %w", err)
	}
	inReview, err := s.repos.Complaint.CountByStatus(models.StatusInReview)
	if err != nil {
		return nil, fmt.Errorf("failed to count in_review complaints: %w", err)
	}
	resolved, err := s.repos.Complaint.CountByStatus(models.StatusResolved)
	if err != nil {
		return nil, fmt.Errorf("failed to count resolved complaints: %w", err)
	}

	return &models.StatusCounts{
		Total:    total,
		Received: received,
		InReview: inReview,
		Resolved: resolved,
	}, nil
}

// InvalidateCounts drops cached aggregates after a complaint write
func InvalidateCounts() {
	if err := cache.Delete(CacheKeyStatusCounts); err != nil {
		log.Printf("Error invalidating status counts cache: %v", err)
	}
}

// TimeSeries buckets all complaints by the calendar day of their creation
// timestamp, in the time reference the timestamps were stored with. Days
// without complaints do not appear; output is ascending by date and each
// date occurs exactly once.
func (s *Service) TimeSeries() ([]models.DailyStats, error) {
	times, err := s.repos.Complaint.CreationTimes()
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int, len(times))
	for _, t := range times {
		key := fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
		buckets[key]++
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	// Zero-padded YYYY-MM-DD sorts lexicographically in chronological order.
	sort.Strings(dates)

	series := make([]models.DailyStats, len(dates))
	for i, date := range dates {
		series[i] = models.DailyStats{Date: date, Count: buckets[date]}
	}
	return series, nil
}
