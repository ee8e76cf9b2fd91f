package service

import (
	"fmt"
	"time"

	"strava-durability/internal/analysis"
	"strava-durability/internal/config"
	"strava-durability/internal/store"
)

// QueryService provides read-only queries for the TUI and reports
type QueryService struct {
	store        *store.DB
	athlete      analysis.Athlete
	baselineDays int
}

// NewQueryService creates a new query service
func NewQueryService(db *store.DB, athleteCfg config.AthleteConfig, baselineDays int) *QueryService {
	if baselineDays <= 0 {
		baselineDays = DefaultBaselineDays
	}
	return &QueryService{
		store:        db,
		athlete:      analysis.Athlete{RestingHR: athleteCfg.RestingHR, MaxHR: athleteCfg.MaxHR},
		baselineDays: baselineDays,
	}
}

// RideWithMetrics combines a ride and its persisted metrics row.
// Metrics is nil when the ride has not been analyzed yet.
type RideWithMetrics struct {
	Ride    store.Ride
	Metrics *store.RideMetrics
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	// Latest analyzed ride
	CurrentScore *float64
	ScoreTrend   string // "+3.1" or "-2.4" vs baseline

	// Historical averages over the trailing baseline window
	Baseline *analysis.Baseline

	// Recent rides
	RecentRides []RideWithMetrics

	// For charts: durability score of analyzed rides, oldest first
	ScoreHistory []float64
	ScoreDates   []time.Time
}

// GetDashboardData fetches all data needed for the dashboard
func (q *QueryService) GetDashboardData() (*DashboardData, error) {
	data := &DashboardData{}

	recent, err := q.GetRideList(RecentRidesLimit, 0)
	if err != nil {
		return nil, err
	}
	data.RecentRides = recent

	baseline, err := q.GetBaseline()
	if err != nil {
		return nil, err
	}
	data.Baseline = baseline

	data.CurrentScore = latestScore(recent)
	data.ScoreTrend = scoreTrend(data.CurrentScore, recent)

	history, err := q.GetRideList(HistoricalRidesLimit, 0)
	if err != nil {
		return nil, err
	}
	// Oldest first for charting
	for i := len(history) - 1; i >= 0; i-- {
		rm := history[i]
		if rm.Metrics == nil || rm.Metrics.DurabilityScore == nil {
			continue
		}
		data.ScoreHistory = append(data.ScoreHistory, *rm.Metrics.DurabilityScore)
		data.ScoreDates = append(data.ScoreDates, rm.Ride.StartDate)
	}

	return data, nil
}

// GetRideList returns rides newest first, each with its metrics row when one
// exists
func (q *QueryService) GetRideList(limit, offset int) ([]RideWithMetrics, error) {
	rides, err := q.store.ListRides(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing rides: %w", err)
	}

	result := make([]RideWithMetrics, len(rides))
	for i, r := range rides {
		m, err := q.store.GetRideMetrics(r.ID)
		if err != nil {
			return nil, fmt.Errorf("getting metrics for %d: %w", r.ID, err)
		}
		result[i] = RideWithMetrics{Ride: r, Metrics: m}
	}
	return result, nil
}

// GetTotalRideCount returns the number of stored rides, for pagination
func (q *QueryService) GetTotalRideCount() (int, error) {
	return q.store.CountRides()
}

// RideDetail contains the full durability breakdown for a single ride
type RideDetail struct {
	Ride    store.Ride
	Metrics *store.RideMetrics

	// Analysis is the full recomputed breakdown including quartile summaries
	// and the fatigue curve, which are not persisted. Nil when the ride's
	// streams cannot be analyzed; ComputeError carries the reason.
	Analysis     *analysis.DurabilityMetrics
	ComputeError string

	Baseline *analysis.Baseline
}

// GetRideDetailByID returns the detailed durability analysis for one ride.
// The scalar metrics come from the persisted row; the quartile summaries and
// fatigue curve are recomputed from the stored streams.
func (q *QueryService) GetRideDetailByID(id int64) (*RideDetail, error) {
	ride, err := q.store.GetRide(id)
	if err != nil {
		return nil, err
	}

	detail := &RideDetail{Ride: *ride}

	detail.Metrics, err = q.store.GetRideMetrics(id)
	if err != nil {
		return nil, fmt.Errorf("getting metrics for %d: %w", id, err)
	}

	points, err := q.store.GetStreams(id)
	if err != nil {
		return nil, fmt.Errorf("getting streams for %d: %w", id, err)
	}
	if len(points) > 0 {
		metrics, computeErr := analysis.Compute(convertPoints(points), q.athlete)
		if computeErr != nil {
			detail.ComputeError = computeErr.Error()
		} else {
			detail.Analysis = metrics
		}
	}

	detail.Baseline, err = q.GetBaseline()
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// GetBaseline aggregates per-metric averages over the trailing baseline
// window. Returns nil when no analyzed rides fall inside the window.
func (q *QueryService) GetBaseline() (*analysis.Baseline, error) {
	cutoff := time.Now().AddDate(0, 0, -q.baselineDays).Format(time.RFC3339)
	rows, err := q.store.GetMetricsSince(cutoff)
	if err != nil {
		return nil, fmt.Errorf("getting baseline metrics: %w", err)
	}

	metricRows := make([]analysis.MetricRow, len(rows))
	for i, r := range rows {
		metricRows[i] = analysis.MetricRow{
			PwHrDrift:     r.PwHrDrift,
			Rolling5Diff:  r.Rolling5Diff,
			Power150Delta: r.Power150Delta,
			Z2Early:       r.Z2Early,
			Z2Late:        r.Z2Late,
			CadenceDrop:   r.CadenceDrop,
			HRCreep:       r.HRCreep,
		}
	}

	return analysis.AggregateBaseline(metricRows), nil
}

// latestScore returns the durability score of the most recent analyzed ride
func latestScore(recent []RideWithMetrics) *float64 {
	for _, rm := range recent {
		if rm.Metrics != nil && rm.Metrics.DurabilityScore != nil {
			return rm.Metrics.DurabilityScore
		}
	}
	return nil
}

// scoreTrend compares the latest score against the average of the other
// recent analyzed rides
func scoreTrend(current *float64, recent []RideWithMetrics) string {
	if current == nil {
		return ""
	}

	var sum float64
	var count int
	seenCurrent := false
	for _, rm := range recent {
		if rm.Metrics == nil || rm.Metrics.DurabilityScore == nil {
			continue
		}
		if !seenCurrent {
			seenCurrent = true
			continue
		}
		sum += *rm.Metrics.DurabilityScore
		count++
	}
	if count == 0 {
		return ""
	}

	diff := *current - sum/float64(count)
	if diff >= 0 {
		return fmt.Sprintf("+%.1f", diff)
	}
	return fmt.Sprintf("%.1f", diff)
}
