package models

// Schedule maps a time of day and a set of weekdays to an automatic motor run.
// Days are indexed from Monday (0) to Sunday (6).
type Schedule struct {
	ID      int64  `json:"id"`
	Time    string `json:"time"` // HH:MM
	Days    []int  `json:"days"`
	Enabled bool   `json:"enabled"`
}

// ScheduleInput is the body sent to the device when creating or updating a schedule.
type ScheduleInput struct {
	Time    string `json:"time"`
	Days    []int  `json:"days"`
	Enabled bool   `json:"enabled"`
}
