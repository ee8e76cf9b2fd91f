package store

import "database/sql"

const metricColumns = `ride_id, pw_hr_drift, rolling5_diff, power_150_delta,
	z2_early, z2_late, cadence_drop, hr_creep,
	power_fade, ef_decline, ef_early, ef_late,
	wpb_slope_per_hour, wpb_percent_per_hour, normalized_power,
	durability_score, compute_error`

// SaveRideMetrics stores computed durability metrics for a ride
func (db *DB) SaveRideMetrics(m *RideMetrics) error {
	_, err := db.Exec(`
		INSERT INTO ride_metrics (
			ride_id, pw_hr_drift, rolling5_diff, power_150_delta,
			z2_early, z2_late, cadence_drop, hr_creep,
			power_fade, ef_decline, ef_early, ef_late,
			wpb_slope_per_hour, wpb_percent_per_hour, normalized_power,
			durability_score, compute_error, computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(ride_id) DO UPDATE SET
			pw_hr_drift = excluded.pw_hr_drift,
			rolling5_diff = excluded.rolling5_diff,
			power_150_delta = excluded.power_150_delta,
			z2_early = excluded.z2_early,
			z2_late = excluded.z2_late,
			cadence_drop = excluded.cadence_drop,
			hr_creep = excluded.hr_creep,
			power_fade = excluded.power_fade,
			ef_decline = excluded.ef_decline,
			ef_early = excluded.ef_early,
			ef_late = excluded.ef_late,
			wpb_slope_per_hour = excluded.wpb_slope_per_hour,
			wpb_percent_per_hour = excluded.wpb_percent_per_hour,
			normalized_power = excluded.normalized_power,
			durability_score = excluded.durability_score,
			compute_error = excluded.compute_error,
			computed_at = CURRENT_TIMESTAMP
	`,
		m.RideID, m.PwHrDrift, m.Rolling5Diff, m.Power150Delta,
		m.Z2Early, m.Z2Late, m.CadenceDrop, m.HRCreep,
		m.PowerFade, m.EFDecline, m.EFEarly, m.EFLate,
		m.WPBSlopePerHour, m.WPBPercentPerHour, m.NormalizedPower,
		m.DurabilityScore, m.ComputeError,
	)
	return err
}

// GetRideMetrics retrieves computed metrics for a ride.
// Returns nil without error when no row exists.
func (db *DB) GetRideMetrics(rideID int64) (*RideMetrics, error) {
	row := db.QueryRow(`
		SELECT `+metricColumns+`
		FROM ride_metrics
		WHERE ride_id = ?
	`, rideID)

	var m RideMetrics
	err := scanMetricsRow(row.Scan, &m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetAllMetrics retrieves metrics for all rides ordered by ride start date
// descending
func (db *DB) GetAllMetrics() ([]RideMetrics, error) {
	rows, err := db.Query(`
		SELECT m.ride_id, m.pw_hr_drift, m.rolling5_diff, m.power_150_delta,
			m.z2_early, m.z2_late, m.cadence_drop, m.hr_creep,
			m.power_fade, m.ef_decline, m.ef_early, m.ef_late,
			m.wpb_slope_per_hour, m.wpb_percent_per_hour, m.normalized_power,
			m.durability_score, m.compute_error
		FROM ride_metrics m
		JOIN rides r ON r.id = m.ride_id
		ORDER BY r.start_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMetricsRows(rows)
}

// GetMetricsSince retrieves successfully computed metrics for rides starting
// on or after the given RFC3339 date, for baseline aggregation
func (db *DB) GetMetricsSince(startDate string) ([]RideMetrics, error) {
	rows, err := db.Query(`
		SELECT m.ride_id, m.pw_hr_drift, m.rolling5_diff, m.power_150_delta,
			m.z2_early, m.z2_late, m.cadence_drop, m.hr_creep,
			m.power_fade, m.ef_decline, m.ef_early, m.ef_late,
			m.wpb_slope_per_hour, m.wpb_percent_per_hour, m.normalized_power,
			m.durability_score, m.compute_error
		FROM ride_metrics m
		JOIN rides r ON r.id = m.ride_id
		WHERE r.start_date >= ? AND m.compute_error IS NULL
		ORDER BY r.start_date DESC
	`, startDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMetricsRows(rows)
}

func scanMetricsRows(rows *sql.Rows) ([]RideMetrics, error) {
	var all []RideMetrics
	for rows.Next() {
		var m RideMetrics
		if err := scanMetricsRow(rows.Scan, &m); err != nil {
			return nil, err
		}
		all = append(all, m)
	}
	return all, rows.Err()
}

func scanMetricsRow(scan func(...any) error, m *RideMetrics) error {
	return scan(
		&m.RideID, &m.PwHrDrift, &m.Rolling5Diff, &m.Power150Delta,
		&m.Z2Early, &m.Z2Late, &m.CadenceDrop, &m.HRCreep,
		&m.PowerFade, &m.EFDecline, &m.EFEarly, &m.EFLate,
		&m.WPBSlopePerHour, &m.WPBPercentPerHour, &m.NormalizedPower,
		&m.DurabilityScore, &m.ComputeError,
	)
}
