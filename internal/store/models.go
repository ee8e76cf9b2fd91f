package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// Ride represents a Strava ride summary
type Ride struct {
	ID                 int64     `db:"id"`
	AthleteID          int64     `db:"athlete_id"`
	Name               string    `db:"name"`
	Type               string    `db:"type"`
	StartDate          time.Time `db:"start_date"`
	StartDateLocal     time.Time `db:"start_date_local"`
	Timezone           string    `db:"timezone"`
	Distance           float64   `db:"distance"`    // meters
	MovingTime         int       `db:"moving_time"` // seconds
	ElapsedTime        int       `db:"elapsed_time"`
	TotalElevationGain float64   `db:"total_elevation_gain"`
	AverageSpeed       float64   `db:"average_speed"` // m/s
	MaxSpeed           float64   `db:"max_speed"`
	AverageWatts       *float64  `db:"average_watts"`
	AverageHeartrate   *float64  `db:"average_heartrate"`
	MaxHeartrate       *float64  `db:"max_heartrate"`
	AverageCadence     *float64  `db:"average_cadence"`
	DeviceWatts        bool      `db:"device_watts"` // power-meter watts, not estimated
	HasHeartrate       bool      `db:"has_heartrate"`
	StreamsSynced      bool      `db:"streams_synced"`
}

// StreamPoint represents a single data point from ride streams
type StreamPoint struct {
	RideID         int64    `db:"ride_id"`
	TimeOffset     int      `db:"time_offset"` // seconds
	Watts          *float64 `db:"watts"`
	Heartrate      *int     `db:"heartrate"` // bpm
	Cadence        *int     `db:"cadence"`   // rpm
	VelocitySmooth *float64 `db:"velocity_smooth"`
	Altitude       *float64 `db:"altitude"`
	Distance       *float64 `db:"distance"` // cumulative meters
}

// RideMetrics represents computed durability metrics for a ride.
// A nil field means the metric was unavailable for that ride; ComputeError
// records why the whole computation was skipped, when it was.
type RideMetrics struct {
	RideID            int64    `db:"ride_id"`
	PwHrDrift         *float64 `db:"pw_hr_drift"`
	Rolling5Diff      *float64 `db:"rolling5_diff"`
	Power150Delta     *float64 `db:"power_150_delta"`
	Z2Early           *float64 `db:"z2_early"`
	Z2Late            *float64 `db:"z2_late"`
	CadenceDrop       *float64 `db:"cadence_drop"`
	HRCreep           *float64 `db:"hr_creep"`
	PowerFade         *float64 `db:"power_fade"`
	EFDecline         *float64 `db:"ef_decline"`
	EFEarly           *float64 `db:"ef_early"`
	EFLate            *float64 `db:"ef_late"`
	WPBSlopePerHour   *float64 `db:"wpb_slope_per_hour"`
	WPBPercentPerHour *float64 `db:"wpb_percent_per_hour"`
	NormalizedPower   *float64 `db:"normalized_power"`
	DurabilityScore   *float64 `db:"durability_score"`
	ComputeError      *string  `db:"compute_error"`
}
