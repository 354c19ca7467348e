package estimate

import (
	"fmt"
	"regexp"
	"strings"
)

// TitleExtractor derives entry titles from commit messages.
type TitleExtractor struct {
	patterns []*regexp.Regexp
}

// NewTitleExtractor compiles patterns in multi-line mode, so ^ and $ match at
// line boundaries.
func NewTitleExtractor(patterns []string) (*TitleExtractor, error) {
	te := &TitleExtractor{}
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		re, err := regexp.Compile("(?m)" + pat)
		if err != nil {
			return nil, fmt.Errorf("estimate: invalid title pattern %q: %w", pat, err)
		}
		te.patterns = append(te.patterns, re)
	}
	return te, nil
}

// Title returns the title for a commit message. Without patterns it's the
// whole message. Otherwise the first matching pattern wins, using its first
// capture group if it has one. If nothing matches, the first line is used.
func (te *TitleExtractor) Title(msg string) string {
	if te == nil || len(te.patterns) == 0 {
		return strings.TrimSpace(msg)
	}

	for _, re := range te.patterns {
		m := re.FindStringSubmatchIndex(msg)
		if m == nil {
			continue
		}
		start, end := m[0], m[1]
		if len(m) >= 4 && m[2] >= 0 {
			start, end = m[2], m[3]
		}
		return strings.TrimSpace(msg[start:end])
	}

	line := strings.TrimLeft(msg, "\n")
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Len returns the number of patterns.
func (te *TitleExtractor) Len() int {
	if te == nil {
		return 0
	}
	return len(te.patterns)
}
