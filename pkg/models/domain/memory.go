package domain

import "time"

// Preferences are per-tool user settings, previously a browser-local
// singleton, now held behind an injected store.
type Preferences struct {
	Tool     string
	Settings map[string]string
}

// UsageRecord is one logged tool invocation.
type UsageRecord struct {
	ID       string
	Tool     string
	FileName string
	RunAt    time.Time
}
