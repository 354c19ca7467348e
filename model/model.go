// Package model contains the data shared between log readers, the estimator
// and the report writers.
package model

import "time"

// Entry is one row of a time sheet: a unit of work ending at a commit.
type Entry struct {
	Title    string        `json:"title"`
	Duration time.Duration `json:"duration"`
	// Date is the author timestamp of the commit that closed the task.
	Date     time.Time `json:"date"`
	Repo     string    `json:"repo,omitempty"`
	Author   string    `json:"author,omitempty"`
	CommitID string    `json:"commit,omitempty"`
}
