package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Rides (summary data from /athlete/activities)
		`CREATE TABLE IF NOT EXISTS rides (
			id INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			start_date TEXT NOT NULL,
			start_date_local TEXT NOT NULL,
			timezone TEXT,
			distance REAL NOT NULL,
			moving_time INTEGER NOT NULL,
			elapsed_time INTEGER NOT NULL,
			total_elevation_gain REAL,
			average_speed REAL,
			max_speed REAL,
			average_watts REAL,
			average_heartrate REAL,
			max_heartrate REAL,
			average_cadence REAL,
			device_watts INTEGER NOT NULL,
			has_heartrate INTEGER NOT NULL,
			streams_synced INTEGER DEFAULT 0,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_rides_start_date ON rides(start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_rides_type ON rides(type)`,
		`CREATE INDEX IF NOT EXISTS idx_rides_has_hr ON rides(has_heartrate)`,

		// Streams (second-by-second data from /activities/{id}/streams)
		`CREATE TABLE IF NOT EXISTS streams (
			ride_id INTEGER NOT NULL,
			time_offset INTEGER NOT NULL,
			watts REAL,
			heartrate INTEGER,
			cadence INTEGER,
			velocity_smooth REAL,
			altitude REAL,
			distance REAL,
			PRIMARY KEY (ride_id, time_offset),
			FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_streams_ride ON streams(ride_id)`,

		// Computed durability metrics (per ride)
		`CREATE TABLE IF NOT EXISTS ride_metrics (
			ride_id INTEGER PRIMARY KEY,
			pw_hr_drift REAL,
			rolling5_diff REAL,
			power_150_delta REAL,
			z2_early REAL,
			z2_late REAL,
			cadence_drop REAL,
			hr_creep REAL,
			power_fade REAL,
			ef_decline REAL,
			ef_early REAL,
			ef_late REAL,
			wpb_slope_per_hour REAL,
			wpb_percent_per_hour REAL,
			normalized_power REAL,
			durability_score REAL,
			compute_error TEXT,
			computed_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (ride_id) REFERENCES rides(id) ON DELETE CASCADE
		)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
