package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jeffrom/logit/vcs"
)

// Discover expands repository arguments. Remote URLs and plain paths are
// kept as given. Glob patterns ("~/src/*", "work/**") are expanded and only
// matches that look like git repositories are kept. Duplicates are removed.
func Discover(args []string) ([]string, error) {
	var repos []string
	seen := make(map[string]bool)
	add := func(p string) {
		key := p
		if !vcs.IsRemote(p) {
			if abs, err := filepath.Abs(p); err == nil {
				key = abs
			}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		repos = append(repos, p)
	}

	for _, arg := range args {
		if vcs.IsRemote(arg) || !hasMeta(arg) {
			add(arg)
			continue
		}

		pattern := expandHome(arg)
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("runner: bad repository pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			if vcs.IsRepository(m) {
				add(m)
			}
		}
	}
	return repos, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
