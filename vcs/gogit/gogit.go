// Package gogit implements vcs.Interface with go-git, without needing a git
// binary.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/model"
	"github.com/jeffrom/logit/vcs"
)

// Repository reads commits from a local repository or an in-memory clone of
// a remote one.
type Repository struct {
	cfg  config.Config
	path string
	name string
	repo *git.Repository
}

// Open opens the repository at path, which must be the top of a working copy
// or a bare repository. Remote URLs are cloned into memory.
func Open(ctx context.Context, cfg config.Config, path string) (*Repository, error) {
	r := &Repository{
		cfg:  cfg,
		path: path,
		name: vcs.RepoName(path),
	}

	var err error
	if vcs.IsRemote(path) {
		cfg.Debugf("gogit: cloning %s into memory", path)
		r.repo, err = git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
			URL:        path,
			NoCheckout: true,
			Tags:       git.AllTags,
		})
	} else if err = vcs.CheckLocal(path); err == nil {
		r.repo, err = git.PlainOpen(path)
	}
	if err != nil {
		return nil, vcs.OpenError{Path: path, Err: err}
	}
	return r, nil
}

// ReadCommits walks the history of query, or of every reference when query
// is empty, returning each commit once.
func (r *Repository) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	var starts []plumbing.Hash
	if query != "" {
		h, err := r.repo.ResolveRevision(plumbing.Revision(query))
		if err != nil {
			return nil, vcs.OpenError{Path: r.path, Err: fmt.Errorf("can't resolve %q: %w", query, err)}
		}
		starts = append(starts, *h)
	} else {
		var err error
		starts, err = r.referenceCommits()
		if err != nil {
			return nil, vcs.OpenError{Path: r.path, Err: err}
		}
	}

	commits, err := r.walk(ctx, starts)
	if err != nil {
		return nil, vcs.OpenError{Path: r.path, Err: err}
	}
	r.cfg.Debugf("gogit: read %d commits from %s", len(commits), r.path)
	return commits, nil
}

// walk visits every commit reachable from starts once, without descending
// into history it has already seen.
func (r *Repository) walk(ctx context.Context, starts []plumbing.Hash) ([]*model.Commit, error) {
	visited := make(map[plumbing.Hash]bool)
	isStart := make(map[plumbing.Hash]bool, len(starts))
	for _, h := range starts {
		isStart[h] = true
	}

	var commits []*model.Commit
	pending := append([]plumbing.Hash(nil), starts...)
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if visited[h] {
			continue
		}
		visited[h] = true

		c, err := r.repo.CommitObject(h)
		if errors.Is(err, plumbing.ErrObjectNotFound) && !isStart[h] {
			// shallow clone boundary
			r.cfg.Debugf("gogit: history of %s ends at missing commit %s", r.path, h.String()[:8])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", h, err)
		}
		commits = append(commits, r.toModel(c))
		for _, parent := range c.ParentHashes {
			if !visited[parent] {
				pending = append(pending, parent)
			}
		}
	}
	return commits, nil
}

// referenceCommits returns the commit each reference points to, peeling
// annotated tags. References to anything but commits are ignored.
func (r *Repository) referenceCommits() ([]plumbing.Hash, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("can't list references: %w", err)
	}
	defer refs.Close()

	seen := make(map[plumbing.Hash]bool)
	var hashes []plumbing.Hash
	for {
		ref, err := refs.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating references: %w", err)
		}
		if ref.Type() != plumbing.HashReference {
			continue
		}

		h, ok := r.peel(ref)
		if !ok || seen[h] {
			continue
		}
		seen[h] = true
		hashes = append(hashes, h)
	}

	if head, err := r.repo.Head(); err == nil && !seen[head.Hash()] {
		if h, ok := r.peel(head); ok {
			hashes = append(hashes, h)
		}
	}
	return hashes, nil
}

func (r *Repository) peel(ref *plumbing.Reference) (plumbing.Hash, bool) {
	h := ref.Hash()
	if tag, err := r.repo.TagObject(h); err == nil {
		c, err := tag.Commit()
		if err != nil {
			r.cfg.Debugf("gogit: skipping tag %s in %s: %v", ref.Name().Short(), r.path, err)
			return plumbing.ZeroHash, false
		}
		return c.Hash, true
	}
	if _, err := r.repo.CommitObject(h); err != nil {
		r.cfg.Debugf("gogit: skipping reference %s in %s: %v", ref.Name().Short(), r.path, err)
		return plumbing.ZeroHash, false
	}
	return h, true
}

func (r *Repository) toModel(c *object.Commit) *model.Commit {
	subject, body := model.SplitMessage(c.Message)
	return &model.Commit{
		ID:             c.Hash.String(),
		Author:         c.Author.Name,
		AuthorEmail:    c.Author.Email,
		AuthorDate:     c.Author.When,
		Committer:      c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		CommitterDate:  c.Committer.When,
		Subject:        subject,
		Body:           body,
		Repo:           r.name,
	}
}
