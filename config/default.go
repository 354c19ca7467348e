package config

import "time"

const (
	FirstCommitExclude = "exclude"
	FirstCommitZero    = "zero"
	FirstCommitCap     = "cap"
)

var FirstCommitModes = []string{FirstCommitExclude, FirstCommitZero, FirstCommitCap}

var Formats = []string{"csv", "xlsx"}

var Columns = []string{"date", "time", "title", "duration", "author", "repo", "commit"}

var DurationFormats = []string{"clock", "minutes", "hours", "seconds"}

const (
	BackendGoGit = "go-git"
	BackendGit   = "git"
)

var Backends = []string{BackendGoGit, BackendGit}

func GetDefault() Config {
	return Config{
		Cap:            Duration(3 * time.Hour),
		FirstCommit:    FirstCommitExclude,
		Columns:        []string{"date", "title", "duration"},
		DurationFormat: "clock",
		DateFormat:     "2006-01-02",
		Backend:        BackendGoGit,
		Concurrency:    4,
	}
}
