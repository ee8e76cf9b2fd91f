package service

const (
	// Batch size for stream fetches per sync, kept under Strava's
	// 15-minute request budget
	StreamSyncBatchSize = 50

	// Pagination limits
	RecentRidesLimit     = 10
	HistoricalRidesLimit = 200

	// Default trailing window for baseline aggregation
	DefaultBaselineDays = 90

	// Sync state keys
	lastRideSyncKey = "last_ride_sync"
)

// Compute error labels persisted with a ride's metrics row when the
// durability computation could not run
const (
	ComputeErrInsufficientData = "insufficient data"
	ComputeErrUnableToSplit    = "unable to split segments"
)
