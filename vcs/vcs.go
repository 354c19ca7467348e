// Package vcs abstracts reading commit logs. Implementations live in the
// gitcli and gogit subpackages.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jeffrom/logit/model"
)

// OpenError is returned when a repository can't be opened or read.
type OpenError struct {
	Path string
	Err  error
}

func (e OpenError) Error() string {
	return fmt.Sprintf("vcs: can't read repository %q: %v", e.Path, e.Err)
}

func (e OpenError) Unwrap() error { return e.Err }

type Interface interface {
	// ReadCommits returns the commits reachable from query. An empty query
	// means every reference in the repository. Each commit is returned once.
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
}

var scpLikeURL = regexp.MustCompile(`^[A-Za-z0-9_.-]+@[A-Za-z0-9_.-]+:`)

// IsRemote reports whether path is a URL to clone rather than a local path.
func IsRemote(path string) bool {
	for _, scheme := range []string{"http://", "https://", "ssh://", "git://", "file://"} {
		if strings.HasPrefix(path, scheme) {
			return true
		}
	}
	return scpLikeURL.MatchString(path)
}

// RepoName returns the label used for a repository in reports: the last path
// element, without a .git suffix.
func RepoName(path string) string {
	p := strings.TrimRight(path, "/")
	if IsRemote(p) {
		if i := strings.LastIndexAny(p, "/:"); i >= 0 {
			p = p[i+1:]
		}
	} else {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		p = filepath.Base(p)
		if p == ".git" {
			p = filepath.Base(filepath.Dir(filepath.Clean(strings.TrimRight(path, "/"))))
		}
	}
	return strings.TrimSuffix(p, ".git")
}

// CheckLocal returns an error unless path is the top of a working copy or a
// bare repository. Subdirectories of a repository are rejected.
func CheckLocal(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		return nil
	}
	for _, name := range []string{"HEAD", "objects", "refs"} {
		if _, err := os.Stat(filepath.Join(path, name)); err != nil {
			return errNotRepository
		}
	}
	return nil
}

var errNotRepository = errors.New("not a git repository")

// IsRepository reports whether dir is a working copy or a bare repository.
func IsRepository(dir string) bool {
	return CheckLocal(dir) == nil
}
