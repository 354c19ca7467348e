// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/model"
	"github.com/jeffrom/logit/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg  config.Config
	path string
	wd   string
	repo string
	tmp  []string

	cloned bool
}

// New returns a reader for the repository at path, which may also be a
// remote URL. Remotes are cloned into a temporary directory on first read.
func New(cfg config.Config, path string) *Git {
	return &Git{
		cfg:  cfg,
		path: path,
		wd:   path,
		repo: vcs.RepoName(path),
	}
}

// Cleanup removes temporary clones.
func (g *Git) Cleanup() {
	for _, dir := range g.tmp {
		g.cfg.Debugf("removing temporary clone %s", dir)
		if err := os.RemoveAll(dir); err != nil {
			g.cfg.Warnf("failed to remove temporary clone %s: %v", dir, err)
		}
	}
	g.tmp = nil
}

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	EXPECTED_LOG_PARTS = 9
)

var logFormat = "--pretty=tformat:" + strings.Join([]string{
	"%H", "%aN", "%aE", "%ai", "%cN", "%cE", "%ci", "%s", "%b",
}, "%x1f") + "%x1e"

func (g *Git) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	if err := g.prepare(ctx); err != nil {
		return nil, vcs.OpenError{Path: g.path, Err: err}
	}

	args := []string{"-c", "log.showSignature=false", "log", "--no-color", logFormat}
	if query == "" {
		args = append(args, "--all")
	} else {
		args = append(args, query, "--")
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, vcs.OpenError{Path: g.path, Err: err}
	}

	commits, err := ParseLog(string(b))
	if err != nil {
		return nil, vcs.OpenError{Path: g.path, Err: err}
	}
	for _, c := range commits {
		c.Repo = g.repo
	}
	if len(commits) > 0 {
		g.cfg.Debugf("gitcli: read %d commits from %s, newest %s", len(commits), g.path, commits[0].ShortID())
	}
	return commits, nil
}

// prepare makes sure wd points at a git repository, cloning remotes.
func (g *Git) prepare(ctx context.Context) error {
	if vcs.IsRemote(g.path) {
		if g.cloned {
			return nil
		}
		dir, err := ioutil.TempDir("", "logit-clone-")
		if err != nil {
			return err
		}
		g.tmp = append(g.tmp, dir)
		g.cfg.Debugf("+ git clone --bare %s %s", g.path, dir)
		g.wd = ""
		if _, err := g.call(ctx, []string{"clone", "--bare", "--quiet", g.path, dir}); err != nil {
			return err
		}
		g.wd = dir
		g.cloned = true
		return nil
	}

	if err := vcs.CheckLocal(g.path); err != nil {
		return err
	}
	_, err := g.call(ctx, []string{"rev-parse", "--git-dir"})
	return err
}

// ParseLog parses the output of git log in logFormat.
func ParseLog(raw string) ([]*model.Commit, error) {
	var commits []*model.Commit
	for _, record := range strings.Split(raw, recordSep) {
		record = strings.TrimLeft(record, "\r\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		parts := strings.Split(record, fieldSep)
		if len(parts) != EXPECTED_LOG_PARTS {
			return nil, fmt.Errorf("gitcli: expected %d parts from git log, got %d", EXPECTED_LOG_PARTS, len(parts))
		}

		commitID := parts[0]
		if len(commitID) < 7 {
			return nil, fmt.Errorf("gitcli: unexpected git log record: %q", record)
		}

		authorDate, err := ParseGitISO8601(parts[3])
		if err != nil {
			return nil, fmt.Errorf("gitcli: bad author date for %s: %w", commitID, err)
		}
		committerDate, err := ParseGitISO8601(parts[6])
		if err != nil {
			return nil, fmt.Errorf("gitcli: bad committer date for %s: %w", commitID, err)
		}

		commits = append(commits, &model.Commit{
			ID:             commitID,
			Author:         parts[1],
			AuthorEmail:    parts[2],
			AuthorDate:     authorDate,
			Committer:      parts[4],
			CommitterEmail: parts[5],
			CommitterDate:  committerDate,
			Subject:        parts[7],
			Body:           strings.TrimSpace(parts[8]),
		})
	}
	return commits, nil
}
