// Package estimate infers how long each commit took from the gap since the
// previous one.
package estimate

import (
	"sort"
	"time"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/model"
)

// Options configures an Estimator.
type Options struct {
	// Cap is the longest duration a single entry can get.
	Cap time.Duration
	// FirstCommit is one of config.FirstCommitModes. Empty means exclude.
	FirstCommit string
	// MinDuration drops entries shorter than it. Zero keeps everything.
	MinDuration time.Duration
	Titles      *TitleExtractor
}

// OptionsFromConfig builds estimator options from the command-line config.
func OptionsFromConfig(cfg config.Config, titles *TitleExtractor) Options {
	return Options{
		Cap:         cfg.Cap.Std(),
		FirstCommit: cfg.FirstCommit,
		MinDuration: cfg.MinDuration.Std(),
		Titles:      titles,
	}
}

type Estimator struct {
	opts Options
}

func New(opts Options) *Estimator {
	if opts.Titles == nil {
		opts.Titles = &TitleExtractor{}
	}
	return &Estimator{opts: opts}
}

// Estimate merges commits from any number of repositories into one timeline
// and returns an entry per commit, oldest first. The input is not modified.
func (e *Estimator) Estimate(commits []*model.Commit) []*model.Entry {
	sorted := make([]*model.Commit, len(commits))
	copy(sorted, commits)
	SortCommits(sorted)

	entries := make([]*model.Entry, 0, len(sorted))
	var prev time.Time
	for i, c := range sorted {
		when := commitTime(c)

		var d time.Duration
		if i == 0 {
			switch e.opts.FirstCommit {
			case config.FirstCommitZero:
			case config.FirstCommitCap:
				d = e.opts.Cap
			default:
				prev = when
				continue
			}
		} else {
			d = e.Between(prev, when)
		}
		prev = when

		if d < e.opts.MinDuration {
			continue
		}
		entries = append(entries, &model.Entry{
			Title:    e.opts.Titles.Title(c.Message()),
			Duration: d,
			Date:     when,
			Repo:     c.Repo,
			Author:   c.Author,
			CommitID: c.ID,
		})
	}
	return entries
}

// Between returns the duration attributed to a commit made at end when the
// previous one was made at start.
func (e *Estimator) Between(start, end time.Time) time.Duration {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	if d > e.opts.Cap {
		return e.opts.Cap
	}
	return d
}

// SortCommits orders commits by author date. Ties are broken by repository
// and commit id so the result doesn't depend on the input order.
func SortCommits(commits []*model.Commit) {
	sort.SliceStable(commits, func(i, j int) bool {
		a, b := commits[i], commits[j]
		ta, tb := commitTime(a), commitTime(b)
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		if a.Repo != b.Repo {
			return a.Repo < b.Repo
		}
		return a.ID < b.ID
	})
}

// commitTime is the author date at second precision.
func commitTime(c *model.Commit) time.Time {
	return c.AuthorDate.Truncate(time.Second)
}
