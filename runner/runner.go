// Package runner manages command-line execution: reading repositories,
// estimating durations and summarizing the result.
package runner

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/estimate"
	"github.com/jeffrom/logit/model"
	"github.com/jeffrom/logit/vcs"
)

// Opener returns a log reader for a repository path or URL. The returned
// cleanup func, if any, is called once the repository has been read.
type Opener func(ctx context.Context, path string) (vcs.Interface, func(), error)

type Runner struct {
	cfg    config.Config
	open   Opener
	titles *estimate.TitleExtractor
	est    *estimate.Estimator
	loc    *time.Location
}

func New(cfg config.Config, open Opener) (*Runner, error) {
	titles, err := estimate.NewTitleExtractor(cfg.TitlePatterns)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:    cfg,
		open:   open,
		titles: titles,
		est:    estimate.New(estimate.OptionsFromConfig(cfg, titles)),
		loc:    loc,
	}, nil
}

// Result is the outcome of a run.
type Result struct {
	Entries []*model.Entry
	// Commits is the number of commits by the configured authors.
	Commits int
	// Repos is the number of repositories read successfully.
	Repos   int
	Skipped *SkipError
}

func (r *Result) SkippedCount() int {
	if r.Skipped == nil {
		return 0
	}
	return len(r.Skipped.Repos)
}

// Run reads every repository and estimates the entries. Unreadable
// repositories are skipped and reported in Result.Skipped.
func (r *Runner) Run(ctx context.Context, repos []string) (*Result, error) {
	commits, ok, skipped := r.Collect(ctx, repos)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.cfg.Debugf("read %d commits from %d repositories", len(commits), ok)

	return &Result{
		Entries: r.est.Estimate(commits),
		Commits: len(commits),
		Repos:   ok,
		Skipped: skipped,
	}, nil
}

type repoResult struct {
	commits []*model.Commit
	err     error
}

// Collect reads the configured authors' commits from repos, at most
// cfg.Concurrency at a time. It returns the commits, the number of
// repositories read, and the repositories that had to be skipped, if any.
func (r *Runner) Collect(ctx context.Context, repos []string) ([]*model.Commit, int, *SkipError) {
	results := make([]repoResult, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	limit := r.cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			commits, err := r.readRepo(ctx, repo)
			if err != nil {
				r.cfg.Errorf("skipping repository %s: %v", repo, err)
			} else {
				r.cfg.Debugf("%s: %d matching commits", repo, len(commits))
			}
			results[i] = repoResult{commits: commits, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var commits []*model.Commit
	var skipped *SkipError
	ok := 0
	for i, res := range results {
		if res.err != nil {
			skipped = skipped.add(repos[i], res.err)
			continue
		}
		ok++
		commits = append(commits, res.commits...)
	}
	return commits, ok, skipped
}

func (r *Runner) readRepo(ctx context.Context, path string) ([]*model.Commit, error) {
	reader, cleanup, err := r.open(ctx, path)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return nil, err
	}

	all, err := reader.ReadCommits(ctx, "")
	if err != nil {
		return nil, err
	}
	var commits []*model.Commit
	for _, c := range all {
		if MatchAuthor(c, r.cfg.Authors) {
			commits = append(commits, c)
		}
	}
	return commits, nil
}

// MatchAuthor reports whether any of authors is the commit author's name or
// email, ignoring case.
func MatchAuthor(c *model.Commit, authors []string) bool {
	for _, author := range authors {
		author = strings.TrimSpace(author)
		if strings.EqualFold(author, c.Author) || strings.EqualFold(author, c.AuthorEmail) {
			return true
		}
	}
	return false
}
