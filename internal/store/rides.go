package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const rideColumns = `id, athlete_id, name, type, start_date, start_date_local, timezone,
	distance, moving_time, elapsed_time, total_elevation_gain,
	average_speed, max_speed, average_watts, average_heartrate, max_heartrate,
	average_cadence, device_watts, has_heartrate, streams_synced`

// UpsertRide inserts or updates a ride
func (db *DB) UpsertRide(r *Ride) error {
	_, err := db.Exec(`
		INSERT INTO rides (
			id, athlete_id, name, type, start_date, start_date_local, timezone,
			distance, moving_time, elapsed_time, total_elevation_gain,
			average_speed, max_speed, average_watts, average_heartrate, max_heartrate,
			average_cadence, device_watts, has_heartrate, streams_synced, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			name = excluded.name,
			type = excluded.type,
			start_date = excluded.start_date,
			start_date_local = excluded.start_date_local,
			timezone = excluded.timezone,
			distance = excluded.distance,
			moving_time = excluded.moving_time,
			elapsed_time = excluded.elapsed_time,
			total_elevation_gain = excluded.total_elevation_gain,
			average_speed = excluded.average_speed,
			max_speed = excluded.max_speed,
			average_watts = excluded.average_watts,
			average_heartrate = excluded.average_heartrate,
			max_heartrate = excluded.max_heartrate,
			average_cadence = excluded.average_cadence,
			device_watts = excluded.device_watts,
			has_heartrate = excluded.has_heartrate,
			updated_at = CURRENT_TIMESTAMP
	`,
		r.ID, r.AthleteID, r.Name, r.Type,
		r.StartDate.Format(time.RFC3339), r.StartDateLocal.Format(time.RFC3339), r.Timezone,
		r.Distance, r.MovingTime, r.ElapsedTime, r.TotalElevationGain,
		r.AverageSpeed, r.MaxSpeed, r.AverageWatts, r.AverageHeartrate, r.MaxHeartrate,
		r.AverageCadence, boolToInt(r.DeviceWatts), boolToInt(r.HasHeartrate), boolToInt(r.StreamsSynced),
	)
	return err
}

// GetRide retrieves a ride by ID
func (db *DB) GetRide(id int64) (*Ride, error) {
	row := db.QueryRow(`
		SELECT `+rideColumns+`
		FROM rides
		WHERE id = ?
	`, id)

	return scanRide(row)
}

// ListRides returns rides ordered by start date descending
func (db *DB) ListRides(limit, offset int) ([]Ride, error) {
	rows, err := db.Query(`
		SELECT `+rideColumns+`
		FROM rides
		ORDER BY start_date DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRides(rows)
}

// GetRidesNeedingStreams returns power-meter rides that haven't had their
// streams synced yet
func (db *DB) GetRidesNeedingStreams(limit int) ([]Ride, error) {
	rows, err := db.Query(`
		SELECT `+rideColumns+`
		FROM rides
		WHERE streams_synced = 0 AND device_watts = 1
		ORDER BY start_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRides(rows)
}

// GetRidesNeedingMetrics returns rides that have streams but no durability
// metrics row yet
func (db *DB) GetRidesNeedingMetrics() ([]Ride, error) {
	rows, err := db.Query(`
		SELECT r.id, r.athlete_id, r.name, r.type, r.start_date, r.start_date_local, r.timezone,
			r.distance, r.moving_time, r.elapsed_time, r.total_elevation_gain,
			r.average_speed, r.max_speed, r.average_watts, r.average_heartrate, r.max_heartrate,
			r.average_cadence, r.device_watts, r.has_heartrate, r.streams_synced
		FROM rides r
		WHERE r.streams_synced = 1
		AND NOT EXISTS (SELECT 1 FROM ride_metrics m WHERE m.ride_id = r.id)
		ORDER BY r.start_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRides(rows)
}

// MarkStreamsSynced marks a ride's streams as synced
func (db *DB) MarkStreamsSynced(id int64) error {
	result, err := db.Exec(`
		UPDATE rides
		SET streams_synced = 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRideNotFound
	}
	return nil
}

// CountRides returns the total number of rides
func (db *DB) CountRides() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM rides").Scan(&count)
	return count, err
}

// scanRide scans a single ride from a row
func scanRide(row *sql.Row) (*Ride, error) {
	var r Ride
	var startDate, startDateLocal string
	var deviceWatts, hasHR, streamsSynced int

	err := row.Scan(
		&r.ID, &r.AthleteID, &r.Name, &r.Type, &startDate, &startDateLocal, &r.Timezone,
		&r.Distance, &r.MovingTime, &r.ElapsedTime, &r.TotalElevationGain,
		&r.AverageSpeed, &r.MaxSpeed, &r.AverageWatts, &r.AverageHeartrate, &r.MaxHeartrate,
		&r.AverageCadence, &deviceWatts, &hasHR, &streamsSynced,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRideNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := parseRideDates(&r, startDate, startDateLocal); err != nil {
		return nil, err
	}
	r.DeviceWatts = deviceWatts == 1
	r.HasHeartrate = hasHR == 1
	r.StreamsSynced = streamsSynced == 1

	return &r, nil
}

// scanRides scans multiple rides from rows
func scanRides(rows *sql.Rows) ([]Ride, error) {
	var rides []Ride

	for rows.Next() {
		var r Ride
		var startDate, startDateLocal string
		var deviceWatts, hasHR, streamsSynced int

		err := rows.Scan(
			&r.ID, &r.AthleteID, &r.Name, &r.Type, &startDate, &startDateLocal, &r.Timezone,
			&r.Distance, &r.MovingTime, &r.ElapsedTime, &r.TotalElevationGain,
			&r.AverageSpeed, &r.MaxSpeed, &r.AverageWatts, &r.AverageHeartrate, &r.MaxHeartrate,
			&r.AverageCadence, &deviceWatts, &hasHR, &streamsSynced,
		)
		if err != nil {
			return nil, err
		}

		if err := parseRideDates(&r, startDate, startDateLocal); err != nil {
			return nil, err
		}
		r.DeviceWatts = deviceWatts == 1
		r.HasHeartrate = hasHR == 1
		r.StreamsSynced = streamsSynced == 1

		rides = append(rides, r)
	}

	return rides, rows.Err()
}

func parseRideDates(r *Ride, startDate, startDateLocal string) error {
	var err error
	r.StartDate, err = time.Parse(time.RFC3339, startDate)
	if err != nil {
		return fmt.Errorf("parsing start_date %q: %w", startDate, err)
	}
	r.StartDateLocal, err = time.Parse(time.RFC3339, startDateLocal)
	if err != nil {
		return fmt.Errorf("parsing start_date_local %q: %w", startDateLocal, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
