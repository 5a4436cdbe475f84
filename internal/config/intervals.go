package config

import "time"

// Worker intervals
const (
	// SnapshotReloadInterval defines how often the API checks Redis for a newer spawn set
	SnapshotReloadInterval = 30 * time.Second
)
