package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"strava-durability/internal/analysis"
	"strava-durability/internal/config"
	"strava-durability/internal/store"
	"strava-durability/internal/strava"
)

// SyncService orchestrates syncing ride data from Strava
type SyncService struct {
	client  *strava.Client
	store   *store.DB
	athlete analysis.Athlete
}

// NewSyncService creates a new sync service with athlete config for
// zone classification
func NewSyncService(client *strava.Client, store *store.DB, athleteCfg config.AthleteConfig) *SyncService {
	return &SyncService{
		client:  client,
		store:   store,
		athlete: analysis.Athlete{RestingHR: athleteCfg.RestingHR, MaxHR: athleteCfg.MaxHR},
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase       string // "rides", "streams", "metrics"
	Total       int
	Completed   int
	CurrentRide string
	Error       error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	RidesFetched    int
	RidesStored     int
	StreamsFetched  int
	MetricsComputed int
	MetricsSkipped  int
	Errors          []error
}

// SyncAll performs a full sync: rides -> streams -> metrics
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}

	// Phase 1: Sync ride summaries
	if err := s.syncRides(ctx, progress, result); err != nil {
		return result, fmt.Errorf("syncing rides: %w", err)
	}

	// Phase 2: Fetch streams for rides that need them
	if err := s.syncStreams(ctx, progress, result); err != nil {
		return result, fmt.Errorf("syncing streams: %w", err)
	}

	// Phase 3: Compute durability metrics for rides that need them
	if err := s.computeMetrics(ctx, progress, result); err != nil {
		return result, fmt.Errorf("computing metrics: %w", err)
	}

	return result, nil
}

// syncRides fetches all activities from Strava and stores the power-meter rides
func (s *SyncService) syncRides(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	// Get last sync time
	lastSyncStr, _ := s.store.GetSyncState(lastRideSyncKey)
	var after time.Time
	if lastSyncStr != "" {
		after, _ = time.Parse(time.RFC3339, lastSyncStr)
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "rides", Total: 0, Completed: 0}
	}

	page := 1
	perPage := 100

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		activities, err := s.client.GetActivities(ctx, after, page, perPage)
		if err != nil {
			return fmt.Errorf("fetching page %d: %w", page, err)
		}

		if len(activities) == 0 {
			break
		}

		result.RidesFetched += len(activities)

		for _, a := range activities {
			// Only store rides with real power data
			if a.IsRide() && a.DeviceWatts {
				ride := convertActivity(a)
				if err := s.store.UpsertRide(ride); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("storing ride %d: %w", a.ID, err))
					continue
				}
				result.RidesStored++
			}
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:     "rides",
				Total:     result.RidesFetched,
				Completed: result.RidesStored,
			}
		}

		if len(activities) < perPage {
			break // Last page
		}

		page++
	}

	// Update last sync time
	s.store.SetSyncState(lastRideSyncKey, time.Now().Format(time.RFC3339))

	return nil
}

// syncStreams fetches detailed stream data for rides that need it
func (s *SyncService) syncStreams(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	rides, err := s.store.GetRidesNeedingStreams(StreamSyncBatchSize)
	if err != nil {
		return fmt.Errorf("getting rides needing streams: %w", err)
	}

	if len(rides) == 0 {
		return nil
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "streams", Total: len(rides), Completed: 0}
	}

	for i, ride := range rides {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:       "streams",
				Total:       len(rides),
				Completed:   i,
				CurrentRide: ride.Name,
			}
		}

		streams, err := s.client.GetActivityStreams(ctx, ride.ID)
		if err != nil {
			// Log error but continue - some rides may not have streams
			result.Errors = append(result.Errors, fmt.Errorf("ride %d (%s): %w", ride.ID, ride.Name, err))
			continue
		}

		// Convert and store streams
		points := convertStreams(ride.ID, streams)
		if len(points) > 0 {
			if err := s.store.SaveStreams(ride.ID, points); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("saving streams for %d: %w", ride.ID, err))
				continue
			}
		}

		// Mark ride as having streams synced
		if err := s.store.MarkStreamsSynced(ride.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("marking synced for %d: %w", ride.ID, err))
			continue
		}

		result.StreamsFetched++
	}

	if progress != nil {
		progress <- SyncProgress{
			Phase:     "streams",
			Total:     len(rides),
			Completed: len(rides),
		}
	}

	return nil
}

// computeMetrics runs the durability analysis for rides that need it
func (s *SyncService) computeMetrics(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	rides, err := s.store.GetRidesNeedingMetrics()
	if err != nil {
		return fmt.Errorf("getting rides needing metrics: %w", err)
	}

	if len(rides) == 0 {
		return nil
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "metrics", Total: len(rides), Completed: 0}
	}

	for i, ride := range rides {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if progress != nil {
			progress <- SyncProgress{
				Phase:       "metrics",
				Total:       len(rides),
				Completed:   i,
				CurrentRide: ride.Name,
			}
		}

		points, err := s.store.GetStreams(ride.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("getting streams for %d: %w", ride.ID, err))
			continue
		}

		if len(points) == 0 {
			continue
		}

		row, computed := computeRideMetrics(ride.ID, points, s.athlete)
		if err := s.store.SaveRideMetrics(row); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("saving metrics for %d: %w", ride.ID, err))
			continue
		}
		if computed {
			result.MetricsComputed++
		} else {
			result.MetricsSkipped++
		}
	}

	if progress != nil {
		progress <- SyncProgress{
			Phase:     "metrics",
			Total:     len(rides),
			Completed: len(rides),
		}
	}

	return nil
}

// computeRideMetrics runs the durability analysis on stored stream points and
// maps the result to a persistable row. Rides the analysis rejects get a row
// with just the error label, so they are not picked up again next sync.
func computeRideMetrics(rideID int64, points []store.StreamPoint, athlete analysis.Athlete) (*store.RideMetrics, bool) {
	stream := convertPoints(points)

	metrics, err := analysis.Compute(stream, athlete)
	if err != nil {
		label := err.Error()
		switch {
		case errors.Is(err, analysis.ErrInsufficientData):
			label = ComputeErrInsufficientData
		case errors.Is(err, analysis.ErrUnableToSplit):
			label = ComputeErrUnableToSplit
		}
		return &store.RideMetrics{RideID: rideID, ComputeError: &label}, false
	}

	row := &store.RideMetrics{
		RideID:            rideID,
		PwHrDrift:         metrics.PwHrDrift,
		Rolling5Diff:      metrics.Rolling5Diff,
		Power150Delta:     metrics.Power150Delta,
		Z2Early:           metrics.Z2Early,
		Z2Late:            metrics.Z2Late,
		CadenceDrop:       metrics.CadenceDrop,
		HRCreep:           metrics.HRCreep,
		PowerFade:         metrics.PowerFade,
		EFDecline:         metrics.EFDecline,
		EFEarly:           metrics.EFEarly,
		EFLate:            metrics.EFLate,
		WPBSlopePerHour:   metrics.WattsPerBeat.SlopePerHour,
		WPBPercentPerHour: metrics.WattsPerBeat.PercentPerHour,
		NormalizedPower:   analysis.NormalizedPowerOf(stream),
		DurabilityScore:   metrics.DurabilityScore,
	}
	return row, true
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.client.RateLimitStatus()
}

// convertActivity converts a Strava API activity to a store ride
func convertActivity(a strava.Activity) *store.Ride {
	ride := &store.Ride{
		ID:                 a.ID,
		AthleteID:          a.Athlete.ID,
		Name:               a.Name,
		Type:               a.Type,
		StartDate:          a.StartDate,
		StartDateLocal:     a.StartDateLocal,
		Timezone:           a.Timezone,
		Distance:           a.Distance,
		MovingTime:         a.MovingTime,
		ElapsedTime:        a.ElapsedTime,
		TotalElevationGain: a.TotalElevationGain,
		AverageSpeed:       a.AverageSpeed,
		MaxSpeed:           a.MaxSpeed,
		DeviceWatts:        a.DeviceWatts,
		HasHeartrate:       a.HasHeartrate,
		StreamsSynced:      false,
	}

	if a.AverageWatts > 0 {
		ride.AverageWatts = &a.AverageWatts
	}
	if a.AverageHeartrate > 0 {
		ride.AverageHeartrate = &a.AverageHeartrate
	}
	if a.MaxHeartrate > 0 {
		ride.MaxHeartrate = &a.MaxHeartrate
	}
	if a.AverageCadence > 0 {
		ride.AverageCadence = &a.AverageCadence
	}

	return ride
}

// convertStreams converts Strava API streams to store stream points
func convertStreams(rideID int64, s *strava.Streams) []store.StreamPoint {
	if s == nil || s.Time == nil {
		return nil
	}

	length := len(s.Time.Data)
	points := make([]store.StreamPoint, length)

	for i := 0; i < length; i++ {
		p := store.StreamPoint{
			RideID:     rideID,
			TimeOffset: s.Time.Data[i],
		}

		if s.Watts != nil && i < len(s.Watts.Data) {
			w := s.Watts.Data[i]
			p.Watts = &w
		}

		if s.Heartrate != nil && i < len(s.Heartrate.Data) {
			hr := s.Heartrate.Data[i]
			p.Heartrate = &hr
		}

		if s.Cadence != nil && i < len(s.Cadence.Data) {
			cad := s.Cadence.Data[i]
			p.Cadence = &cad
		}

		if s.VelocitySmooth != nil && i < len(s.VelocitySmooth.Data) {
			vel := s.VelocitySmooth.Data[i]
			p.VelocitySmooth = &vel
		}

		if s.Altitude != nil && i < len(s.Altitude.Data) {
			alt := s.Altitude.Data[i]
			p.Altitude = &alt
		}

		if s.Distance != nil && i < len(s.Distance.Data) {
			dist := s.Distance.Data[i]
			p.Distance = &dist
		}

		points[i] = p
	}

	return points
}

// convertPoints maps stored stream points to the analysis sample stream
func convertPoints(points []store.StreamPoint) analysis.SampleStream {
	n := len(points)
	s := analysis.SampleStream{
		Time:      make([]float64, n),
		Watts:     make([]*float64, n),
		Heartrate: make([]*float64, n),
		Distance:  make([]*float64, n),
		Altitude:  make([]*float64, n),
		Velocity:  make([]*float64, n),
		Cadence:   make([]*float64, n),
	}

	for i, p := range points {
		s.Time[i] = float64(p.TimeOffset)
		s.Watts[i] = p.Watts
		s.Distance[i] = p.Distance
		s.Altitude[i] = p.Altitude
		s.Velocity[i] = p.VelocitySmooth
		if p.Heartrate != nil {
			hr := float64(*p.Heartrate)
			s.Heartrate[i] = &hr
		}
		if p.Cadence != nil {
			cad := float64(*p.Cadence)
			s.Cadence[i] = &cad
		}
	}

	return s
}
