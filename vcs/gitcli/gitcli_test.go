package gitcli

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jeffrom/logit/config"
	"github.com/jeffrom/logit/vcs"
)

func record(fields ...string) string {
	return strings.Join(fields, fieldSep) + recordSep + "\n"
}

func TestParseLog(t *testing.T) {
	raw := record("1111111111111111111111111111111111111111", "Jeff", "jeff@example.com", "2020-08-17 16:26:10 -0700",
		"Jeff", "jeff@example.com", "2020-08-17 16:30:00 -0700", "Fix ISSUE-42: bug", "multi\n\nline body\n") +
		record("2222222222222222222222222222222222222222", "Other", "other@example.com", "2020-08-17 09:00:00 +0000",
			"Other", "other@example.com", "2020-08-17 09:00:00 +0000", "initial", "")

	commits, err := ParseLog(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}

	c := commits[0]
	if c.Author != "Jeff" || c.AuthorEmail != "jeff@example.com" {
		t.Errorf("unexpected author: %q <%q>", c.Author, c.AuthorEmail)
	}
	expectDate := time.Date(2020, 8, 17, 23, 26, 10, 0, time.UTC)
	if !c.AuthorDate.Equal(expectDate) {
		t.Errorf("expected author date %s, got %s", expectDate, c.AuthorDate)
	}
	if c.Subject != "Fix ISSUE-42: bug" {
		t.Errorf("unexpected subject %q", c.Subject)
	}
	if c.Body != "multi\n\nline body" {
		t.Errorf("unexpected body %q", c.Body)
	}
	if commits[1].Body != "" {
		t.Errorf("expected empty body, got %q", commits[1].Body)
	}
}

func TestParseLogErrors(t *testing.T) {
	tcs := []struct {
		name string
		raw  string
	}{
		{
			name: "missing-fields",
			raw:  record("1111111111111111111111111111111111111111", "Jeff"),
		},
		{
			name: "bad-date",
			raw: record("1111111111111111111111111111111111111111", "Jeff", "jeff@example.com", "yesterday",
				"Jeff", "jeff@example.com", "2020-08-17 16:30:00 -0700", "subject", ""),
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLog(tc.raw); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}

	commits, err := ParseLog("\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 0 {
		t.Fatalf("expected no commits, got %d", len(commits))
	}
}

func TestArgsString(t *testing.T) {
	got := ArgsString([]string{"commit", "-m", "hello there"})
	expect := `commit -m "hello there"`
	if got != expect {
		t.Fatalf("expected %s, got %s", expect, got)
	}
}

func gitCall(t *testing.T, dir string, env []string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append([]string{
		"HOME=" + dir,
		"PATH=" + os.Getenv("PATH"),
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_AUTHOR_NAME=logit-test",
		"GIT_AUTHOR_EMAIL=logit-test@example.com",
		"GIT_COMMITTER_NAME=logit-test",
		"GIT_COMMITTER_EMAIL=logit-test@example.com",
	}, env...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", ArgsString(args), err, out)
	}
}

func TestReadCommits(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir, err := ioutil.TempDir("", "logit-gitcli")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	repoDir := filepath.Join(dir, "myrepo")

	gitCall(t, dir, nil, "init", "--quiet", repoDir)
	gitCall(t, repoDir, []string{"GIT_AUTHOR_DATE=2021-03-15T09:00:00Z"}, "commit", "--quiet", "--allow-empty", "-m", "start")
	gitCall(t, repoDir, nil, "checkout", "--quiet", "-b", "feature")
	gitCall(t, repoDir, []string{"GIT_AUTHOR_DATE=2021-03-15T09:45:00Z"}, "commit", "--quiet", "--allow-empty", "-m", "Fix ISSUE-42: bug", "-m", "details")

	cfg := config.New(nil)
	git := New(cfg, repoDir)
	defer git.Cleanup()

	commits, err := git.ReadCommits(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	newest := commits[0]
	if newest.Subject != "Fix ISSUE-42: bug" || newest.Body != "details" {
		t.Errorf("unexpected message: %q", newest.Message())
	}
	if newest.Repo != "myrepo" {
		t.Errorf("expected repo %q, got %q", "myrepo", newest.Repo)
	}
	if newest.Author != "logit-test" {
		t.Errorf("unexpected author %q", newest.Author)
	}
	if !newest.AuthorDate.Equal(time.Date(2021, 3, 15, 9, 45, 0, 0, time.UTC)) {
		t.Errorf("unexpected author date %s", newest.AuthorDate)
	}
}

func TestReadCommitsNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir, err := ioutil.TempDir("", "logit-gitcli-empty")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	repoDir := filepath.Join(dir, "myrepo")
	gitCall(t, dir, nil, "init", "--quiet", repoDir)
	gitCall(t, repoDir, nil, "commit", "--quiet", "--allow-empty", "-m", "start")
	sub := filepath.Join(repoDir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.New(nil)
	for _, p := range []string{filepath.Join(dir, "nope"), dir, sub, filepath.Join(repoDir, "typo")} {
		_, err := New(cfg, p).ReadCommits(context.Background(), "")
		if err == nil {
			t.Fatalf("expected error reading %s", p)
		}
		var oe vcs.OpenError
		if !errors.As(err, &oe) {
			t.Fatalf("expected vcs.OpenError, got %T: %v", err, err)
		}
		if oe.Path != p {
			t.Errorf("expected path %q, got %q", p, oe.Path)
		}
	}
}
