package store

import (
	"database/sql"
	"fmt"
)

// SaveStreams saves stream data for a ride, replacing any existing points
func (db *DB) SaveStreams(rideID int64, points []StreamPoint) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM streams WHERE ride_id = ?", rideID); err != nil {
		return fmt.Errorf("deleting existing streams: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO streams (
			ride_id, time_offset, watts, heartrate, cadence,
			velocity_smooth, altitude, distance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		_, err := stmt.Exec(
			p.RideID, p.TimeOffset, p.Watts, p.Heartrate, p.Cadence,
			p.VelocitySmooth, p.Altitude, p.Distance,
		)
		if err != nil {
			return fmt.Errorf("inserting stream point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetStreams retrieves all stream points for a ride, ordered by time
func (db *DB) GetStreams(rideID int64) ([]StreamPoint, error) {
	rows, err := db.Query(`
		SELECT ride_id, time_offset, watts, heartrate, cadence,
			velocity_smooth, altitude, distance
		FROM streams
		WHERE ride_id = ?
		ORDER BY time_offset
	`, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []StreamPoint
	for rows.Next() {
		var p StreamPoint
		err := rows.Scan(
			&p.RideID, &p.TimeOffset, &p.Watts, &p.Heartrate, &p.Cadence,
			&p.VelocitySmooth, &p.Altitude, &p.Distance,
		)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// HasStreams checks if a ride has stream data
func (db *DB) HasStreams(rideID int64) (bool, error) {
	var exists int
	err := db.QueryRow(`
		SELECT 1 FROM streams WHERE ride_id = ? LIMIT 1
	`, rideID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
