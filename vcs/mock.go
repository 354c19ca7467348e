package vcs

import (
	"context"
	"time"

	"github.com/jeffrom/logit/model"
)

type Mock struct {
	t       time.Time
	repo    string
	err     error
	commits []*model.Commit
}

func NewMock() *Mock {
	return &Mock{
		t: time.Now(),
	}
}

// SetRepo labels every commit returned by the mock.
func (m *Mock) SetRepo(repo string) *Mock {
	m.repo = repo
	return m
}

// SetError makes ReadCommits fail.
func (m *Mock) SetError(err error) *Mock {
	m.err = err
	return m
}

// SetCommits sets the log. Commits without an author date are placed a
// minute apart going back from the mock's creation time.
func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.AuthorDate.IsZero() {
			c.AuthorDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		if c.CommitterDate.IsZero() {
			c.CommitterDate = c.AuthorDate
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	if m.err != nil {
		return nil, m.err
	}
	commits := make([]*model.Commit, len(m.commits))
	for i, commit := range m.commits {
		c := *commit
		if m.repo != "" {
			c.Repo = m.repo
		}
		commits[i] = &c
	}
	return commits, nil
}
