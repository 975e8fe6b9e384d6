package api

import "time"

type Preferences struct {
	Tool     string            `json:"tool"`
	Settings map[string]string `json:"settings"`
}

type UsageRecord struct {
	Id       string    `json:"id"`
	Tool     string    `json:"tool"`
	FileName string    `json:"file_name"`
	RunAt    time.Time `json:"run_at"`
}
