package vcs

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeffrom/logit/model"
)

func TestIsRemote(t *testing.T) {
	tcs := []struct {
		path   string
		expect bool
	}{
		{path: "https://github.com/jeffrom/logit.git", expect: true},
		{path: "ssh://git@github.com/jeffrom/logit.git", expect: true},
		{path: "git@github.com:jeffrom/logit.git", expect: true},
		{path: "file:///srv/git/logit.git", expect: true},
		{path: "/home/jeff/src/logit", expect: false},
		{path: "../logit", expect: false},
		{path: "C:/src/logit", expect: false},
	}
	for _, tc := range tcs {
		t.Run(tc.path, func(t *testing.T) {
			if got := IsRemote(tc.path); got != tc.expect {
				t.Fatalf("expected %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestRepoName(t *testing.T) {
	tcs := []struct {
		path   string
		expect string
	}{
		{path: "https://github.com/jeffrom/logit.git", expect: "logit"},
		{path: "git@github.com:logit.git", expect: "logit"},
		{path: "/home/jeff/src/logit/", expect: "logit"},
		{path: "/home/jeff/src/logit/.git", expect: "logit"},
		{path: "/srv/git/bare.git", expect: "bare"},
	}
	for _, tc := range tcs {
		t.Run(tc.path, func(t *testing.T) {
			if got := RepoName(tc.path); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestMock(t *testing.T) {
	m := NewMock().SetRepo("mock").SetCommits(
		&model.Commit{ID: "b", Subject: "second"},
		&model.Commit{ID: "a", Subject: "first"},
	)
	commits, err := m.ReadCommits(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if !commits[1].AuthorDate.Before(commits[0].AuthorDate) {
		t.Error("expected mock commits to go back in time")
	}
	for _, c := range commits {
		if c.Repo != "mock" {
			t.Errorf("expected repo %q, got %q", "mock", c.Repo)
		}
	}

	boom := errors.New("boom")
	if _, err := NewMock().SetError(boom).ReadCommits(context.Background(), ""); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}

	var oe error = OpenError{Path: "x", Err: boom}
	if !errors.Is(oe, boom) {
		t.Fatal("expected OpenError to unwrap")
	}
}

func TestCheckLocal(t *testing.T) {
	dir, err := ioutil.TempDir("", "logit-vcs")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	mkdir := func(parts ...string) string {
		p := filepath.Join(append([]string{dir}, parts...)...)
		if err := os.MkdirAll(p, 0755); err != nil {
			t.Fatal(err)
		}
		return p
	}
	work := mkdir("work")
	mkdir("work", ".git")
	sub := mkdir("work", "sub")
	bare := mkdir("bare.git")
	mkdir("bare.git", "objects")
	mkdir("bare.git", "refs")
	if err := ioutil.WriteFile(filepath.Join(bare, "HEAD"), []byte("ref: refs/heads/master\n"), 0644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(work, "README")
	if err := ioutil.WriteFile(file, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	tcs := []struct {
		name   string
		path   string
		expect bool
	}{
		{name: "worktree", path: work, expect: true},
		{name: "bare", path: bare, expect: true},
		{name: "subdirectory", path: sub, expect: false},
		{name: "missing-inside-repo", path: filepath.Join(work, "typo"), expect: false},
		{name: "file", path: file, expect: false},
		{name: "plain-dir", path: dir, expect: false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckLocal(tc.path)
			if tc.expect && err != nil {
				t.Fatalf("expected %s to be a repository, got %v", tc.path, err)
			}
			if !tc.expect && err == nil {
				t.Fatalf("expected %s not to be a repository", tc.path)
			}
			if IsRepository(tc.path) != tc.expect {
				t.Fatalf("IsRepository(%s) disagrees with CheckLocal", tc.path)
			}
		})
	}
}
