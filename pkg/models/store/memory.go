package store

import "time"

type Preference struct {
	Tool      string
	Settings  []byte // JSON object of string settings
	UpdatedAt time.Time
}

type UsageRecord struct {
	ID       string
	Tool     string
	FileName string
	RunAt    time.Time
}
